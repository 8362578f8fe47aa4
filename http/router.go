package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type RouterDeps struct {
	Batch        BatchProcessor
	Limiter      *RateLimiter
	Gatherer     prometheus.Gatherer
	MaxBodyBytes int64
	MaxTermYears int
	Log          zerolog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	payment := NewPaymentHandler(deps.MaxTermYears, deps.Log)
	batch := NewBatchHandler(deps.Batch, deps.MaxBodyBytes, deps.Log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/mortgage", func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(RateLimit(deps.Limiter))
		}
		r.Post("/payment", payment.CalculatePayment)
		r.Post("/batch", batch.ProcessBatch)
		r.Post("/batch/{name}", batch.ProcessNamed)
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}
