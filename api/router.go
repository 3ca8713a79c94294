package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the HTTP routing table. The whole action surface
// hangs off a single /api endpoint; the method selects between the query
// and envelope forms.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api", h.HandleGet)
	r.Post("/api", h.HandlePost)

	return r
}
