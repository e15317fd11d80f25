package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	uploads := app.Group(apiPrefix+"/uploads", middleware.Protected())
	uploads.Get("/signature", handlers.GenerateUploadSignature)
}
