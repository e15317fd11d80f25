package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group(apiPrefix + "/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/user", middleware.Protected(), handlers.GetAuthenticatedUser)
}
