package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rooby-labs/konexa-go-api/internal/utils"
)

// JWTProtected validates bearer tokens and binds the caller's identity to the
// request: user_id, username and user_role locals.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID := stringClaim(claims, "sub", "user_id", "id")
		if userID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}
		c.Locals("user_id", userID)

		if username := stringClaim(claims, "username"); username != "" {
			c.Locals("username", username)
		}
		if role := stringClaim(claims, "role"); role != "" {
			c.Locals("user_role", strings.ToLower(role))
		}

		return c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if str, ok := value.(string); ok {
			if trimmed := strings.TrimSpace(str); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// UserID returns the authenticated identity id bound by JWTProtected.
func UserID(c *fiber.Ctx) string {
	if value := c.Locals("user_id"); value != nil {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// Username returns the authenticated username bound by JWTProtected.
func Username(c *fiber.Ctx) string {
	if value := c.Locals("username"); value != nil {
		if name, ok := value.(string); ok {
			return name
		}
	}
	return ""
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *fiber.Ctx) bool {
	if value := c.Locals("user_role"); value != nil {
		if role, ok := value.(string); ok {
			return strings.EqualFold(role, "admin")
		}
	}
	return false
}
