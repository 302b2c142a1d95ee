package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"notepilot/internal/http/middleware"
	"notepilot/internal/service"
)

// errorPayload is the error body of every endpoint: {"detail": "..."}.
type errorPayload struct {
	Detail string `json:"detail"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func writeError(c *fiber.Ctx, status int, detail string) error {
	return c.Status(status).JSON(errorPayload{Detail: detail})
}

// writeStoreError maps note service errors to their transport form.
// Anything unrecognised becomes a 500 that does not leak the error text.
func writeStoreError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserRequired):
		return writeError(c, fiber.StatusUnauthorized, middleware.UnauthorizedDetail)
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrNameRequired):
		return writeError(c, fiber.StatusUnprocessableEntity, "name is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

// ErrorHandler returns a Fiber global error handler that renders router-level errors as {detail}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad Request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Not Found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method Not Allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "Request Entity Too Large")
		case fiber.StatusUnprocessableEntity:
			return writeError(c, status, "Unprocessable Entity")
		default:
			return writeError(c, status, "Internal Server Error")
		}
	}
}
