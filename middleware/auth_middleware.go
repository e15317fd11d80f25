package middleware

import (
	"github.com/anjiri1684/skill_swap/apperr"
	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(config.Config("JWT_SECRET")),
		SigningMethod: "HS256",
		ErrorHandler:  jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	message := "Invalid or expired JWT"
	if err.Error() == "Missing or malformed JWT" {
		message = "Missing or malformed JWT"
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"kind":    "unauthenticated",
		"code":    fiber.StatusUnauthorized,
		"message": message,
	})
}

func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if role, _ := claims["role"].(string); role == models.UserRoleAdmin {
					return c.Next()
				}
			}
		}
		return apperr.Forbidden("admin access required")
	}
}
