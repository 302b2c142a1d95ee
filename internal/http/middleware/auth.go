package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"notepilot/internal/auth"
)

const (
	// UserIDLocalKey is the key used to store the verified user ID in Fiber's context locals.
	UserIDLocalKey = "user_id"

	// UnauthorizedDetail is the only detail ever returned for a failed verification.
	UnauthorizedDetail = "Invalid token or user"

	bearerPrefix = "Bearer "
)

// RequireUser verifies the bearer token of each request.
//
// Behavior:
// - Missing or non-Bearer Authorization header: 401 without calling the verifier.
// - Verifier failure of any kind: 401 with the same body.
// - Otherwise stores the user ID under UserIDLocalKey.
func RequireUser(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return unauthorized(c)
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			return unauthorized(c)
		}

		userID, err := verifier.Verify(c.UserContext(), token)
		if err != nil || userID == "" {
			return unauthorized(c)
		}

		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// UserID returns the user stored by RequireUser.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(UserIDLocalKey).(string)
	return uid
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": UnauthorizedDetail})
}
