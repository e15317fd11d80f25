package services

import (
	"errors"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddUserSkillInput struct {
	UserID uuid.UUID
	// Either SkillID or SkillName; a name goes through FindOrCreateSkill.
	SkillID     *uuid.UUID
	SkillName   string
	Category    string
	Role        string
	Level       string
	Description *string
}

func IsSkillRole(r string) bool {
	return r == models.SkillRoleTeach || r == models.SkillRoleLearn
}

func IsSkillLevel(l string) bool {
	switch l {
	case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced, models.LevelExpert:
		return true
	}
	return false
}

func ListUserSkills(db *gorm.DB, userID uuid.UUID) ([]models.UserSkill, error) {
	var entries []models.UserSkill
	err := db.Preload("Skill").
		Where("user_id = ?", userID).
		Order("role asc, created_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return entries, nil
}

func AddUserSkill(db *gorm.DB, in AddUserSkillInput) (models.UserSkill, error) {
	var entry models.UserSkill
	if !IsSkillRole(in.Role) {
		return entry, apperr.Validation("role must be one of teach, learn")
	}
	if !IsSkillLevel(in.Level) {
		return entry, apperr.Validation("level must be one of beginner, intermediate, advanced, expert")
	}
	if in.SkillID == nil && in.SkillName == "" {
		return entry, apperr.Validation("skillId or skillName is required")
	}

	var skill models.Skill
	var err error
	if in.SkillID != nil {
		skill, err = GetSkill(db, *in.SkillID)
	} else {
		skill, _, err = FindOrCreateSkill(db, SkillInput{Name: in.SkillName, Category: in.Category})
	}
	if err != nil {
		return entry, err
	}

	declared, err := HasDeclared(db, in.UserID, skill.ID, in.Role)
	if err != nil {
		return entry, err
	}
	if declared {
		return entry, apperr.Conflict("%s is already declared as %s", skill.Name, in.Role)
	}

	entry = models.UserSkill{
		UserID:      in.UserID,
		SkillID:     skill.ID,
		Role:        in.Role,
		Level:       in.Level,
		Description: in.Description,
		CreatedAt:   timeNow(),
	}
	if err := db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.UserSkill{}, apperr.Conflict("%s is already declared as %s", skill.Name, in.Role)
		}
		return models.UserSkill{}, apperr.Internal(err)
	}
	entry.Skill = skill
	return entry, nil
}

// RemoveUserSkill hard-deletes the caller's declarations of skillID. An empty role
// removes both the teach and learn entries. Swaps already citing the skill are untouched.
func RemoveUserSkill(db *gorm.DB, userID, skillID uuid.UUID, role string) error {
	if role != "" && !IsSkillRole(role) {
		return apperr.Validation("role must be one of teach, learn")
	}
	q := db.Where("user_id = ? AND skill_id = ?", userID, skillID)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	res := q.Delete(&models.UserSkill{})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("skill declaration")
	}
	return nil
}

func HasDeclared(db *gorm.DB, userID, skillID uuid.UUID, role string) (bool, error) {
	var count int64
	err := db.Model(&models.UserSkill{}).
		Where("user_id = ? AND skill_id = ? AND role = ?", userID, skillID, role).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}
