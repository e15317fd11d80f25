package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	reviews := app.Group(apiPrefix+"/reviews", middleware.Protected())
	reviews.Post("", handlers.CreateReview)
	reviews.Put("/:id", handlers.UpdateReview)
}
