package serverutils

import (
	"strconv"
	"time"

	"storefront-be/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// MetricsMiddleware records request count and latency per route template.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			// The error middleware sits inside this one and has already written the status,
			// but a bare fiber error may still be pending.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		// Route().Path is the template ("/api/cart/v1/items/:id"), keeping label cardinality bounded.
		path := ctx.Route().Path
		labels := []string{ctx.Method(), path, strconv.Itoa(status)}
		m.HttpRequestsTotal.WithLabelValues(labels...).Inc()
		m.HttpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

// MetricsHandler exposes the gatherer in the Prometheus text format.
func MetricsHandler(gatherer prometheus.Gatherer) fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	)
	return func(ctx *fiber.Ctx) error {
		handler(ctx.Context())
		return nil
	}
}
