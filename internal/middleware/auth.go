package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/opencampus/portal/internal/models"
	"github.com/opencampus/portal/internal/repository"
	"github.com/opencampus/portal/internal/utils"
)

const userLocalsKey = "user"

// Authenticate returns the bearer-token gate: it verifies the token signature
// and expiry, resolves the subject to a live account, and attaches the account
// to the request. Requests fail with 401 when the header is absent, the token
// is invalid or expired, or the referenced user no longer exists. Every
// request is authenticated independently; there is no session state.
func Authenticate(secret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "No token, authorization denied")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "No token, authorization denied")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "Token is not valid")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "Token is not valid")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "Token is not valid")
		}

		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "Token is not valid")
		}

		userID, err := strconv.ParseUint(subject, 10, 64)
		if err != nil {
			return utils.SendMessage(c, fiber.StatusUnauthorized, "Token is not valid")
		}

		user, err := users.GetByID(c.Context(), uint(userID))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendMessage(c, fiber.StatusUnauthorized, "Token is not valid")
			}
			return utils.SendMessage(c, fiber.StatusInternalServerError, "internal server error")
		}

		c.Locals(userLocalsKey, user)

		return c.Next()
	}
}

// UserFromContext returns the authenticated account attached by Authenticate.
func UserFromContext(c *fiber.Ctx) (models.User, bool) {
	value := c.Locals(userLocalsKey)
	if value == nil {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}
