package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionScheduled  = "scheduled"
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionCancelled  = "cancelled"
)

type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SwapID      uuid.UUID `gorm:"type:uuid;not null;index" json:"swapId"`
	TeacherID   uuid.UUID `gorm:"type:uuid;not null;index" json:"teacherId"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	SkillID     uuid.UUID `gorm:"type:uuid;not null;index" json:"skillId"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduledAt"`
	Duration    int       `gorm:"not null" json:"duration"`
	Status      string    `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	MeetingLink *string   `gorm:"size:255" json:"meetingLink"`
	Notes       *string   `gorm:"type:text" json:"notes"`

	Swap    Swap  `gorm:"foreignKey:SwapID" json:"-"`
	Teacher User  `gorm:"foreignKey:TeacherID" json:"-"`
	Student User  `gorm:"foreignKey:StudentID" json:"-"`
	Skill   Skill `gorm:"foreignKey:SkillID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Session) TableName() string { return "learning_sessions" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// EndsAt is ScheduledAt plus Duration minutes.
func (s Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.Duration) * time.Minute)
}
