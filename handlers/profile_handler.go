package handlers

import (
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FirstName       *string `json:"firstName" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName" validate:"omitempty,max=100"`
	Bio             *string `json:"bio" validate:"omitempty,max=2000"`
	Location        *string `json:"location" validate:"omitempty,max=255"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

type ReplaceAvailabilityRequest struct {
	Slots []services.AvailabilitySlot `json:"slots"`
}

func GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	profile, err := services.GetProfile(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := services.UpdateProfile(db(c), userID, services.ProfileUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Bio:             req.Bio,
		Location:        req.Location,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func GetMyAvailability(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	slots, err := services.ListAvailability(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(slots)
}

func GetUserAvailability(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	slots, err := services.ListAvailability(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(slots)
}

// ReplaceAvailability overwrites the caller's weekly schedule; an empty list clears it.
func ReplaceAvailability(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req ReplaceAvailabilityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	slots, err := services.ReplaceAvailability(db(c), userID, req.Slots)
	if err != nil {
		return err
	}
	return c.JSON(slots)
}
