package lecture

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quizforge/quizforge-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.AuthMiddleware)

	r.Post("/", h.Upload)
	r.Get("/{id}", h.GetLecture)
	return r
}
