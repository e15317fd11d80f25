package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group(apiPrefix+"/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	skills := admin.Group("/skills")
	skills.Put("/:id", handlers.AdminUpdateSkill)
	skills.Delete("/:id", handlers.AdminDeleteSkill)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
}
