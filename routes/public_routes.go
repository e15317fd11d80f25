package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	app.Get("/health", handlers.HealthCheck)

	api := app.Group(apiPrefix)
	api.Get("/skills", handlers.GetSkills)
	api.Get("/reviews/:userId", handlers.GetUserReviews)
	api.Get("/rating/:userId", handlers.GetUserRating)
	api.Get("/availability/:userId", handlers.GetUserAvailability)
}
