package services

import (
	"strings"
	"unicode/utf8"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxMessageLength = 5000

// Publisher fans an event out to the given users. It must not block.
type Publisher interface {
	Publish(recipients []uuid.UUID, ev websocket.Event)
}

type SendMessageInput struct {
	SwapID   uuid.UUID
	SenderID uuid.UUID
	// ReceiverID may be left zero; it is then the other participant.
	ReceiverID uuid.UUID
	Content    string
}

// MessageView is a message annotated for the viewing user.
type MessageView struct {
	models.Message
	IsFromUser bool       `json:"isFromUser"`
	Unread     bool       `json:"unread"`
	Sender     PublicUser `json:"sender"`
}

func SendMessage(db *gorm.DB, pub Publisher, in SendMessageInput) (models.Message, error) {
	var msg models.Message
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return msg, apperr.Validation("content must not be empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return msg, apperr.Validation("content must be at most %d characters", maxMessageLength)
	}

	swap, err := GetSwapForParticipant(db, in.SwapID, in.SenderID)
	if err != nil {
		return msg, err
	}
	other, _ := OtherParticipant(swap.RequesterID, swap.ProviderID, in.SenderID)
	if in.ReceiverID != uuid.Nil && in.ReceiverID != other {
		return msg, apperr.Validation("receiver must be the other participant of the swap")
	}

	msg = models.Message{
		SwapID:     swap.ID,
		SenderID:   in.SenderID,
		ReceiverID: other,
		Content:    content,
		CreatedAt:  timeNow(),
	}
	if err := db.Create(&msg).Error; err != nil {
		return msg, apperr.Internal(err)
	}

	if pub != nil {
		pub.Publish([]uuid.UUID{msg.SenderID, msg.ReceiverID}, websocket.Event{
			Type:     websocket.EventMessage,
			SwapID:   msg.SwapID,
			SenderID: msg.SenderID,
			Content:  msg.Content,
			Data:     msg,
		})
	}
	return msg, nil
}

// MessagesForSwap returns a page of the swap's conversation, oldest first.
func MessagesForSwap(db *gorm.DB, swapID, userID uuid.UUID, p Paging) ([]MessageView, error) {
	if _, err := GetSwapForParticipant(db, swapID, userID); err != nil {
		return nil, err
	}
	limit, offset := p.normalize(50, 200)

	var messages []models.Message
	err := db.Preload("Sender").
		Where("swap_id = ?", swapID).
		Order("created_at asc").Order("id").
		Limit(limit).Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return messageViews(messages, userID), nil
}

// RecentMessages returns the latest messages across all of the user's swaps, newest first.
func RecentMessages(db *gorm.DB, userID uuid.UUID, limit int) ([]MessageView, error) {
	if limit <= 0 {
		limit = 20
	}
	var messages []models.Message
	err := db.Preload("Sender").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").Order("id").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return messageViews(messages, userID), nil
}

func messageViews(messages []models.Message, viewer uuid.UUID) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		fromUser := m.SenderID == viewer
		views = append(views, MessageView{
			Message:    m,
			IsFromUser: fromUser,
			Unread:     !fromUser && m.ReadAt == nil,
			Sender:     PublicView(m.Sender),
		})
	}
	return views
}

// MarkMessageRead stamps readAt the first time the receiver calls it; later calls
// return the message unchanged.
func MarkMessageRead(db *gorm.DB, messageID, userID uuid.UUID) (models.Message, error) {
	var msg models.Message
	if err := db.First(&msg, "id = ?", messageID).Error; err != nil {
		return msg, dbError(err, "message")
	}
	if msg.ReceiverID != userID {
		return msg, apperr.Unauthorized("only the receiver can mark a message as read")
	}
	if msg.ReadAt != nil {
		return msg, nil
	}

	res := db.Model(&models.Message{}).
		Where("id = ? AND read_at IS NULL", messageID).
		Update("read_at", timeNow())
	if res.Error != nil {
		return msg, apperr.Internal(res.Error)
	}
	if err := db.First(&msg, "id = ?", messageID).Error; err != nil {
		return msg, dbError(err, "message")
	}
	return msg, nil
}

func UnreadCount(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&models.Message{}).
		Where("receiver_id = ? AND read_at IS NULL", userID).
		Count(&n).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}
