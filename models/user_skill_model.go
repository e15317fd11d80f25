package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SkillRoleTeach = "teach"
	SkillRoleLearn = "learn"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// UserSkill is a ledger entry: one user declaring one skill in one role.
type UserSkill struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_role,priority:1" json:"userId"`
	SkillID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill_role,priority:2;index" json:"skillId"`
	Role        string    `gorm:"size:10;not null;uniqueIndex:idx_user_skill_role,priority:3" json:"role"`
	Level       string    `gorm:"size:20;not null" json:"level"`
	Description *string   `gorm:"type:text" json:"description"`

	Skill Skill `gorm:"foreignKey:SkillID" json:"skill"`

	CreatedAt time.Time `json:"createdAt"`
}

func (us *UserSkill) BeforeCreate(tx *gorm.DB) error {
	ensureID(&us.ID)
	return nil
}
