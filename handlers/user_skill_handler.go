package handlers

import (
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AddUserSkillRequest struct {
	SkillID     *uuid.UUID `json:"skillId"`
	SkillName   string     `json:"skillName" validate:"required_without=SkillID,max=100"`
	Category    string     `json:"category" validate:"max=50"`
	Role        string     `json:"role" validate:"required,oneof=teach learn"`
	Level       string     `json:"level" validate:"required,oneof=beginner intermediate advanced expert"`
	Description *string    `json:"description"`
}

func GetUserSkills(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	entries, err := services.ListUserSkills(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func AddUserSkill(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req AddUserSkillRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	entry, err := services.AddUserSkill(db(c), services.AddUserSkillInput{
		UserID:      userID,
		SkillID:     req.SkillID,
		SkillName:   req.SkillName,
		Category:    req.Category,
		Role:        req.Role,
		Level:       req.Level,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// RemoveUserSkill deletes the caller's declarations of a skill; ?role= narrows it to one role.
func RemoveUserSkill(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	skillID, err := paramUUID(c, "skillId")
	if err != nil {
		return err
	}
	if err := services.RemoveUserSkill(db(c), userID, skillID, c.Query("role")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
