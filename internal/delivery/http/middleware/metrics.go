package middleware

import (
	"strconv"
	"time"

	"career-compass/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
)

// MetricsMiddleware records request counts and latencies for every route.
// Register it before the error middleware so the observed status code is
// the one actually sent.
type MetricsMiddleware struct{}

func NewMetricsMiddleware() *MetricsMiddleware {
	return &MetricsMiddleware{}
}

func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The matched route pattern keeps label cardinality bounded for
		// parameterised paths.
		endpoint := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())
		elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0

		metrics.RecordHTTPRequest(endpoint, method, status)
		metrics.RecordHTTPRequestDuration(endpoint, method, status, elapsedMs)

		return err
	}
}
