package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/opencampus/portal/internal/utils"
)

// RequireRole ensures the authenticated user holds one of the allowed roles.
// It runs after Authenticate; a missing user means the gate was skipped and
// the request is rejected as unauthenticated.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "Authentication required")
		}

		if _, ok := allowed[strings.ToLower(user.Role)]; !ok {
			return utils.SendMessage(c, fiber.StatusForbidden, "Access denied")
		}

		return c.Next()
	}
}
