package routes

import (
	"github.com/anjiri1684/skill_swap/handlers"
	"github.com/anjiri1684/skill_swap/middleware"
	"github.com/gofiber/fiber/v2"
)

func SkillRoutes(app *fiber.App) {
	api := app.Group(apiPrefix)
	api.Post("/skills", middleware.Protected(), handlers.CreateSkill)

	userSkills := api.Group("/user-skills", middleware.Protected())
	userSkills.Get("", handlers.GetUserSkills)
	userSkills.Post("", handlers.AddUserSkill)
	userSkills.Delete("/:skillId", handlers.RemoveUserSkill)
}
