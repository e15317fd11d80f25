package handlers

import (
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
)

type CreateSkillRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Category    string  `json:"category" validate:"max=50"`
	Description *string `json:"description"`
}

func GetSkills(c *fiber.Ctx) error {
	skills, err := services.ListSkills(db(c))
	if err != nil {
		return err
	}
	return c.JSON(skills)
}

// CreateSkill is find-or-create: posting an existing name returns that skill with 200.
func CreateSkill(c *fiber.Ctx) error {
	var req CreateSkillRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	skill, created, err := services.FindOrCreateSkill(db(c), services.SkillInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(skill)
}
