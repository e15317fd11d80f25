package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group(apiPrefix)
	protected := middleware.Protected()

	api.Get("/profile", protected, handlers.GetProfile)
	api.Put("/profile", protected, handlers.UpdateProfile)
	api.Get("/stats", protected, handlers.GetStats)

	api.Get("/availability", protected, handlers.GetMyAvailability)
	api.Put("/availability", protected, handlers.ReplaceAvailability)
}
