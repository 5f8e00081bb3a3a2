package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all accumulator endpoints onto the given router
// under the /accumulators prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/accumulators", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Get("/history", h.History)

			r.Post("/add", h.Add)
			r.Post("/subtract", h.Subtract)
			r.Post("/multiply", h.Multiply)
			r.Post("/divide", h.Divide)
			r.Post("/chain", h.Chain)

			r.Post("/undo", h.Undo)
			r.Post("/redo", h.Redo)
		})
	})
}
