package handlers

import (
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
)

type UpdateSkillRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}

type UserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

func AdminUpdateSkill(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateSkillRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	skill, err := services.UpdateSkill(db(c), id, services.SkillUpdate{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(skill)
}

// AdminDeleteSkill refuses with 409 while anything still references the skill.
func AdminDeleteSkill(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteSkill(db(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func GetAllUsers(c *fiber.Ctx) error {
	page, err := services.ListUsers(db(c), c.Query("search"), services.Paging{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("limit", 10),
	})
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	var req UserStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := services.SetUserActive(db(c), userID, *req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func GetDashboardAnalytics(c *fiber.Ctx) error {
	d, err := services.DashboardAnalytics(db(c))
	if err != nil {
		return err
	}
	return c.JSON(d)
}
