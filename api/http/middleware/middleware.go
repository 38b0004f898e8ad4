package middleware

import (
	"errors"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/artem13815/tracker/pkg/logger"
	"github.com/artem13815/tracker/pkg/metrics"
)

// RequestID propagates X-Request-Id or assigns a fresh uuid.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	})
}

// Recover turns panics into 500s and logs the stack.
func Recover(log *logger.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Error("panic recovered",
				"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
				"panic", e,
				"stack", string(debug.Stack()),
			)
		},
	})
}

// AccessLog writes one line per request.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.With(
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"method", c.Method(),
			"path", c.Path(),
			"status", statusOf(c, err),
			"bytes", len(c.Response().Body()),
			"duration_ms", time.Since(start).Milliseconds(),
		).Info("http request")
		return err
	}
}

// Metrics records request counters and latency labelled by route pattern.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		m.IncInFlight()
		defer m.DecInFlight()

		err := c.Next()
		// Route pattern rather than raw path keeps ids out of label values.
		path := c.Route().Path
		m.ObserveRequest(c.Method(), path, strconv.Itoa(statusOf(c, err)), time.Since(start))
		return err
	}
}

// statusOf reports the status the error handler will write when a handler
// returned an error instead of a response.
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
