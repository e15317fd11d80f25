package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_session_reviewer,priority:1" json:"sessionId"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_session_reviewer,priority:2" json:"reviewerId"`
	RevieweeID uuid.UUID `gorm:"type:uuid;not null;index" json:"revieweeId"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`

	Session  Session `gorm:"foreignKey:SessionID" json:"-"`
	Reviewer User    `gorm:"foreignKey:ReviewerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
