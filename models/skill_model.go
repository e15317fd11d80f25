package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Skill struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	NormalizedName string    `gorm:"size:100;not null;uniqueIndex" json:"-"`
	Category       string    `gorm:"size:50;not null" json:"category"`
	Description    *string   `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// NormalizeSkillName folds case and inner whitespace so "  web   Development" and
// "Web Development" resolve to the same registry row.
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
