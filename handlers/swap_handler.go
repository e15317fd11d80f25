package handlers

import (
	"github.com/anjiri1684/skill_swap/apperr"
	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/database"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/notifications"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateSwapRequest struct {
	ProviderID       uuid.UUID `json:"providerId" validate:"required"`
	RequesterSkillID uuid.UUID `json:"requesterSkillId" validate:"required"`
	ProviderSkillID  uuid.UUID `json:"providerSkillId" validate:"required"`
	Message          *string   `json:"message" validate:"omitempty,max=1000"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func GetSwaps(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	swaps, err := services.SwapsForUser(db(c), userID, c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(swaps)
}

func CreateSwap(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateSwapRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	swap, err := services.CreateSwap(db(c), services.CreateSwapInput{
		RequesterID:      userID,
		ProviderID:       req.ProviderID,
		RequesterSkillID: req.RequesterSkillID,
		ProviderSkillID:  req.ProviderSkillID,
		Message:          req.Message,
	})
	if err != nil {
		return err
	}

	publishSwapStatus(swap)
	if notifications.EmailClient != nil {
		go notifySwap(swap)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

func UpdateSwapStatus(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	swapID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	swap, err := services.UpdateSwapStatus(db(c), swapID, userID, req.Status)
	if err != nil {
		return err
	}

	publishSwapStatus(swap)
	if swap.Status == models.SwapAccepted && notifications.EmailClient != nil {
		go notifySwap(swap)
	}
	return c.JSON(swap)
}

func GetSwapMatches(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	limit := config.Int("MATCH_PAGE_SIZE", 10)
	if size := c.QueryInt("page_size", 0); size > 0 && size <= 50 {
		limit = size
	}
	page := c.QueryInt("page", 1)
	if page < 1 {
		return apperr.ValidationFields("invalid query", map[string]string{"page": "must be at least 1"})
	}
	matches, err := services.FindMatches(db(c), userID, services.MatchOptions{
		Limit:          limit,
		Offset:         (page - 1) * limit,
		ExcludeSwapped: c.QueryBool("exclude_swapped", false),
	})
	if err != nil {
		return err
	}
	return c.JSON(matches)
}

func publishSwapStatus(swap models.Swap) {
	publish([]uuid.UUID{swap.RequesterID, swap.ProviderID}, websocket.Event{
		Type:    websocket.EventSwapStatus,
		SwapID:  swap.ID,
		Content: swap.Status,
		Data:    swap,
	})
}

// notifySwap emails the party that has to act next: the provider for a new
// request, the requester once accepted.
func notifySwap(swap models.Swap) {
	var full models.Swap
	err := database.DB.Preload("Requester").Preload("Provider").
		Preload("RequesterSkill").Preload("ProviderSkill").
		First(&full, "id = ?", swap.ID).Error
	if err != nil {
		logger.L().Warn("swap notification skipped", "swap_id", swap.ID, "error", err)
		return
	}

	switch swap.Status {
	case models.SwapPending:
		mail := notifications.SwapRequested(full.Provider.FirstName, full.Requester.FirstName,
			full.RequesterSkill.Name, full.ProviderSkill.Name)
		notifications.SendEmail(full.Provider.FirstName, full.Provider.Email, mail.Subject, mail.HTML)
	case models.SwapAccepted:
		mail := notifications.SwapAccepted(full.Requester.FirstName, full.Provider.FirstName)
		notifications.SendEmail(full.Requester.FirstName, full.Requester.Email, mail.Subject, mail.HTML)
	}
}
