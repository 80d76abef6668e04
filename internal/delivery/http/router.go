package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/qr/{data}", h.HandleImage)
		r.Get("/qr/{data}/payload", h.HandlePayload)
		r.Get("/qr/{data}/meta", h.HandleMeta)
		r.Post("/bills", h.HandleShare)
	})

	r.Get("/b/{id}", h.HandleShortLink)

	return r
}
