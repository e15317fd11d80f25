package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SwapPending   = "pending"
	SwapAccepted  = "accepted"
	SwapRejected  = "rejected"
	SwapCompleted = "completed"
)

type Swap struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID      uuid.UUID `gorm:"type:uuid;not null;index" json:"requesterId"`
	ProviderID       uuid.UUID `gorm:"type:uuid;not null;index" json:"providerId"`
	RequesterSkillID uuid.UUID `gorm:"type:uuid;not null" json:"requesterSkillId"`
	ProviderSkillID  uuid.UUID `gorm:"type:uuid;not null" json:"providerSkillId"`
	Status           string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Message          *string   `gorm:"type:text" json:"message"`

	Requester      User  `gorm:"foreignKey:RequesterID" json:"-"`
	Provider       User  `gorm:"foreignKey:ProviderID" json:"-"`
	RequesterSkill Skill `gorm:"foreignKey:RequesterSkillID" json:"-"`
	ProviderSkill  Skill `gorm:"foreignKey:ProviderSkillID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Swap) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
