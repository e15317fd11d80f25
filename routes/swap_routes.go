package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func SwapRoutes(app *fiber.App) {
	api := app.Group(apiPrefix)
	api.Get("/swap-matches", middleware.Protected(), handlers.GetSwapMatches)

	swaps := api.Group("/swaps", middleware.Protected())
	swaps.Get("", handlers.GetSwaps)
	swaps.Post("", handlers.CreateSwap)
	swaps.Put("/:id/status", handlers.UpdateSwapStatus)
}
