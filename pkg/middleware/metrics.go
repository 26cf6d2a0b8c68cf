package middleware

import (
	"time"

	"github.com/NeuralTrust/UniSummarize/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	now func() time.Time
}

func NewMetricsMiddleware(now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}
	return &metricsMiddleware{now: now}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := m.now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = Classify(err)
		}
		// Matched route pattern keeps label cardinality bounded.
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "/" && r.Path != "" {
			route = r.Path
		}
		prometheus.ObserveRequest(c.Method(), route, status, m.now().Sub(start))
		return err
	}
}
