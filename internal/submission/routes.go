package submission

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes are public. Quiz taking is anonymous.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/{slug}/submit", h.Submit)
	return r
}
