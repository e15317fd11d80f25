package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SwapID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"swapId"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"senderId"`
	ReceiverID uuid.UUID  `gorm:"type:uuid;not null;index" json:"receiverId"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ReadAt     *time.Time `json:"readAt"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
