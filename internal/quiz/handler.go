package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-lambda/internal/apperr"
	"github.com/quizforge/quizforge-lambda/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(quizID); err != nil {
		verr := apperr.NewValidation("invalid quiz id")
		config.JSON(w, apperr.HTTPStatus(verr), apperr.Payload(verr))
		return
	}

	url, err := h.service.Publish(r.Context(), quizID)
	if err != nil {
		log.WithError(err).Error("Failed to publish quiz")
		config.JSON(w, apperr.HTTPStatus(err), apperr.Payload(err))
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) GetPublished(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "slug required", http.StatusBadRequest)
		return
	}

	public, err := h.service.GetPublished(r.Context(), slug)
	if err != nil {
		log.WithError(err).Warn("Failed to load published quiz")
		config.JSON(w, apperr.HTTPStatus(err), apperr.Payload(err))
		return
	}

	config.JSON(w, http.StatusOK, public)
}
