// Package middleware provides HTTP middleware for the fiber application.
package middleware

import (
	"log"
	"strings"

	"invox/internal/config"
	"invox/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminOnly validates a Bearer JWT and requires the admin role. It guards the
// deployment surface (verification-source upload).
func AdminOnly() fiber.Handler {
	secret := []byte(config.GetEnv("JWT_SECRET", "invox-dev-secret"))

	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			log.Printf("Token validation error: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		claims, ok := token.Claims.(*models.AdminClaims)
		if !ok || !claims.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
