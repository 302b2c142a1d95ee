package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"notepilot/internal/logging"
)

// Logger is a middleware that logs each HTTP request as one JSON line.
// Fields:
// - ts (in the logger's location)
// - request_id (taken from context locals set by RequestID middleware)
// - user_id (when RequireUser resolved one)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
func Logger(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		fields := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     statusOf(c, err),
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		}
		if uid, ok := c.Locals(UserIDLocalKey).(string); ok {
			fields["user_id"] = uid
		}
		log.Log(fields)

		return err
	}
}

// LoggerWithWriter builds a request Logger on top of w.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.New(w, loc))
}

// statusOf returns the status the client will see once the error handler ran.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if fiberErr, ok := err.(*fiber.Error); ok {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
