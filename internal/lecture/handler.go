package lecture

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
	"github.com/quizforge/quizforge-lambda/internal/quizgen"
	"github.com/quizforge/quizforge-lambda/internal/transcribe"
)

const (
	defaultTitle        = "Untitled Lecture"
	defaultNumQuestions = 8
	maxNumQuestions     = 50
)

type Handler struct {
	service PipelineService
}

func NewHandler(s PipelineService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, transcribe.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(transcribe.MaxFileSize + 1<<20); err != nil {
		log.WithError(err).Warn("Malformed upload body")
		writeError(w, apperr.NewValidation("malformed multipart body"))
		return
	}

	input, err := parseUploadForm(r)
	if err != nil {
		log.WithError(err).Warn("Upload rejected by validation")
		writeError(w, err)
		return
	}

	result, err := h.service.Process(r.Context(), *input)
	if err != nil {
		log.WithError(err).Error("Lecture pipeline failed")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func parseUploadForm(r *http.Request) (*PipelineInput, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.NewValidation("missing file")
	}
	defer file.Close()

	if !transcribe.IsSupportedFormat(header.Filename) {
		return nil, apperr.NewValidation(
			"unsupported file format: %s. Supported formats: %s",
			strings.ToLower(extOf(header.Filename)),
			strings.Join(transcribe.SupportedFormats, ", "),
		)
	}
	if header.Size > transcribe.MaxFileSize {
		return nil, apperr.NewValidation(
			"file too large: %.1fMB. Maximum size: 25MB",
			float64(header.Size)/1024/1024,
		)
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	title := r.FormValue("title")
	if title == "" {
		title = defaultTitle
	}

	difficulty := quizgen.DifficultyMedium
	if raw := r.FormValue("difficulty"); raw != "" {
		difficulty, err = quizgen.ParseDifficulty(raw)
		if err != nil {
			return nil, apperr.NewValidation("%v", err)
		}
	}

	numQuestions := defaultNumQuestions
	if raw := r.FormValue("numQuestions"); raw != "" {
		numQuestions, err = strconv.Atoi(raw)
		if err != nil || numQuestions < 1 || numQuestions > maxNumQuestions {
			return nil, apperr.NewValidation("numQuestions must be an integer between 1 and %d", maxNumQuestions)
		}
	}

	classIDRaw := r.FormValue("classId")
	if classIDRaw == "" {
		return nil, apperr.NewValidation("missing classId")
	}
	classID, err := uuid.Parse(classIDRaw)
	if err != nil {
		return nil, apperr.NewValidation("invalid classId")
	}

	return &PipelineInput{
		Audio:        audio,
		Mime:         header.Header.Get("Content-Type"),
		Filename:     header.Filename,
		Title:        title,
		Difficulty:   difficulty,
		NumQuestions: numQuestions,
		ClassID:      classID,
	}, nil
}

func (h *Handler) GetLecture(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id := chi.URLParam(r, "id")
	// Reject before the query so a garbage id is a 400, not a failed
	// uuid cast inside postgres.
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, apperr.NewValidation("invalid lecture id"))
		return
	}

	l, err := h.service.GetLecture(r.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to load lecture")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, l)
}

func (h *Handler) ListByClass(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	classID, err := uuid.Parse(chi.URLParam(r, "classId"))
	if err != nil {
		writeError(w, apperr.NewValidation("invalid classId"))
		return
	}

	lectures, err := h.service.ListByClass(r.Context(), classID)
	if err != nil {
		log.WithError(err).Error("Failed to list lectures")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, lectures)
}

func writeError(w http.ResponseWriter, err error) {
	config.JSON(w, apperr.HTTPStatus(err), apperr.Payload(err))
}

func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return "(none)"
}
