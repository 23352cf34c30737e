package submission

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
)

type Handler struct {
	service GradeService
}

func NewHandler(s GradeService) *Handler {
	return &Handler{service: s}
}

// submitPayload keeps choices raw so a non-array shape is reported as its own
// validation failure rather than a generic decode error. "answers" is a
// legacy alias for the same array.
type submitPayload struct {
	Choices      json.RawMessage `json:"choices"`
	Answers      json.RawMessage `json:"answers"`
	StudentLabel *string         `json:"studentLabel"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "slug required", http.StatusBadRequest)
		return
	}

	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Malformed submission payload")
		writeError(w, apperr.NewValidation("malformed payload"))
		return
	}

	raw := payload.Choices
	if len(raw) == 0 {
		raw = payload.Answers
	}
	if len(raw) == 0 {
		writeError(w, apperr.NewValidation("missing choices"))
		return
	}

	var choices []int
	if err := json.Unmarshal(raw, &choices); err != nil {
		log.WithError(err).Warn("Submission choices are not an integer array")
		writeError(w, apperr.NewValidation("choices must be an array of integers"))
		return
	}

	result, err := h.service.Submit(r.Context(), slug, choices, payload.StudentLabel)
	if err != nil {
		log.WithError(err).Warn("Submission rejected")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(quizID); err != nil {
		writeError(w, apperr.NewValidation("invalid quiz id"))
		return
	}

	results, err := h.service.Results(r.Context(), quizID)
	if err != nil {
		log.WithError(err).Warn("Failed to load quiz results")
		writeError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, results)
}

func writeError(w http.ResponseWriter, err error) {
	config.JSON(w, apperr.HTTPStatus(err), apperr.Payload(err))
}
