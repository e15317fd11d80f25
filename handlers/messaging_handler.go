package handlers

import (
	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SendMessageRequest struct {
	SwapID     uuid.UUID `json:"swapId" validate:"required"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Content    string    `json:"content" validate:"required,max=5000"`
}

// GetRecentMessages returns the caller's latest messages across all swaps.
func GetRecentMessages(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	messages, err := services.RecentMessages(db(c), userID, config.Int("RECENT_MESSAGES_LIMIT", 20))
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

func GetSwapMessages(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	swapID, err := paramUUID(c, "swapId")
	if err != nil {
		return err
	}
	messages, err := services.MessagesForSwap(db(c), swapID, userID, paging(c))
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

func SendMessage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req SendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	msg, err := services.SendMessage(db(c), publisher(), services.SendMessageInput{
		SwapID:     req.SwapID,
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func MarkMessageRead(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	messageID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	msg, err := services.MarkMessageRead(db(c), messageID, userID)
	if err != nil {
		return err
	}
	return c.JSON(msg)
}

func GetUnreadCount(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	n, err := services.UnreadCount(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"unread": n})
}
