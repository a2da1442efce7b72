package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP router for the admin console API.
func NewRouter(
	discountHandler *DiscountHandler,
	productHandler *ProductHandler,
	eventsHandler *EventsHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(logger))

	r.Route("/admin", func(r chi.Router) {
		r.Route("/discounts", func(r chi.Router) {
			r.Post("/", discountHandler.Create)
			r.Get("/", discountHandler.List)
			r.Get("/{id}", discountHandler.Get)
			r.Put("/{id}", discountHandler.Update)
			r.Patch("/{id}/active", discountHandler.SetActive)
			r.Get("/{id}/locks", discountHandler.GetLocks)
		})

		r.Get("/products/available", productHandler.Available)
		r.Get("/events", eventsHandler.List)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
