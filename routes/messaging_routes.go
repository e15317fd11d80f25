package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group(apiPrefix)

	messages := api.Group("/messages", middleware.Protected())
	messages.Get("", handlers.GetRecentMessages)
	messages.Post("", handlers.SendMessage)
	messages.Get("/unread-count", handlers.GetUnreadCount)
	messages.Put("/:id/read", handlers.MarkMessageRead)
	messages.Get("/:swapId", handlers.GetSwapMessages)

	// The websocket authenticates with its first frame, not a header.
	api.Use("/ws", handlers.WebSocketUpgrade)
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
