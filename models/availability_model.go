package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is one weekly recurring window. Times are wall-clock HH:MM in Timezone.
type Availability struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	DayOfWeek int       `gorm:"not null" json:"dayOfWeek"`
	StartTime string    `gorm:"size:5;not null" json:"startTime"`
	EndTime   string    `gorm:"size:5;not null" json:"endTime"`
	Timezone  string    `gorm:"size:50;not null" json:"timezone"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}
