package handlers

import (
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
)

func GetStats(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	stats, err := services.StatsFor(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func HealthCheck(c *fiber.Ctx) error {
	sqlDB, err := db(c).DB()
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
