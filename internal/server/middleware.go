package server

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// RequestLogger logs each HTTP request with the fields operators filter on.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		logger.Info("http.request",
			"request_id", c.Locals("requestid"),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// Metrics holds the prometheus collectors for the HTTP surface.
type Metrics struct {
	requestCount    *prometheus.CounterVec
	normalizedTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		normalizedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "documents_normalized_total",
				Help: "Total number of OCR documents normalized, by review status.",
			},
			[]string{"doc_type", "status"},
		),
	}
	if err := reg.Register(m.requestCount); err != nil {
		return nil, err
	}
	if err := reg.Register(m.normalizedTotal); err != nil {
		return nil, err
	}
	return m, nil
}

// Handler returns the request-counting middleware.
func (m *Metrics) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		err := c.Next()

		// route pattern (e.g. /v1/documents/:id), not the raw path
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.requestCount.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		return err
	}
}

// CountNormalized records one normalization outcome.
func (m *Metrics) CountNormalized(docType, status string) {
	if m == nil {
		return
	}
	m.normalizedTotal.WithLabelValues(docType, status).Inc()
}
