package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwaylab/swingcoach/pkg/utils"
)

// AuthRequired validates the bearer token and stashes the caller's identity
// in request locals (user_id, role) for the handlers downstream.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			return unauthorized(c, "Bearer token required")
		}

		claims, err := utils.ValidateToken(token, secret)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
}
