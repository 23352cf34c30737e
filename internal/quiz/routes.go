package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quizforge/quizforge-lambda/internal/auth"
)

// Routes covers the instructor-facing publish endpoint.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Post("/{id}/publish", h.Publish)
	return r
}

// PublicRoutes covers the anonymous quiz-taking fetch, keyed by slug.
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/{slug}", h.GetPublished)
	return r
}
