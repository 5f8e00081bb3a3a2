package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-chi-accumulator/internal/accumulator"
	"go-chi-accumulator/internal/calculator"
	"go-chi-accumulator/internal/handlers"
	"go-chi-accumulator/internal/observability"
)

func NewRouter(store *accumulator.Store) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, calculator.NewHandler(store))

	return r
}
