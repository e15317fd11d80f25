package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	sessions := app.Group(apiPrefix+"/sessions", middleware.Protected())
	sessions.Get("", handlers.GetSessions)
	sessions.Post("", handlers.CreateSession)
	sessions.Get("/upcoming", handlers.GetUpcomingSessions)
	sessions.Put("/:id/status", handlers.UpdateSessionStatus)
}
