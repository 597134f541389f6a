package api

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	organizerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "organizer",
			Name:      "http_requests_total",
			Help:      "Requests served, by route template and status.",
		},
		[]string{"method", "route", "status"},
	)
	organizerLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "organizer",
			Name:      "http_request_duration_seconds",
			Help:      "Request latency, by route template and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// statusOf returns the status the client will see, including errors that
// fiber's error handler has not written yet.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// PrometheusMiddleware labels by route template, not raw path, so static
// file requests do not explode label cardinality.
func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		labels := []string{c.Method(), c.Route().Path, strconv.Itoa(statusOf(c, err))}
		organizerRequests.WithLabelValues(labels...).Inc()
		organizerLatency.WithLabelValues(labels...).Observe(time.Since(start).Seconds())

		return err
	}
}

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusOf(c, err)

		level := slog.LevelInfo
		if status >= fiber.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.UserContext(), level, "request served",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		)

		return err
	}
}
