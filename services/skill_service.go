package services

import (
	"errors"
	"strings"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultSkillCategory = "General"

type SkillInput struct {
	Name        string
	Category    string
	Description *string
}

func ListSkills(db *gorm.DB) ([]models.Skill, error) {
	var skills []models.Skill
	if err := db.Order("name asc").Find(&skills).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return skills, nil
}

func GetSkill(db *gorm.DB, id uuid.UUID) (models.Skill, error) {
	var skill models.Skill
	if err := db.First(&skill, "id = ?", id).Error; err != nil {
		return skill, dbError(err, "skill")
	}
	return skill, nil
}

// FindOrCreateSkill resolves a skill by its normalized name, creating it on first use.
// created is false when an existing row was returned.
func FindOrCreateSkill(db *gorm.DB, in SkillInput) (skill models.Skill, created bool, err error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return skill, false, apperr.Validation("skill name is required")
	}
	if len(name) > 100 {
		return skill, false, apperr.Validation("skill name must be at most 100 characters")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultSkillCategory
	}
	normalized := models.NormalizeSkillName(name)

	err = db.Where("normalized_name = ?", normalized).First(&skill).Error
	if err == nil {
		return skill, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return skill, false, apperr.Internal(err)
	}

	skill = models.Skill{Name: name, NormalizedName: normalized, Category: category, Description: in.Description}
	if err := db.Create(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent create of the same name
			var existing models.Skill
			if err := db.Where("normalized_name = ?", normalized).First(&existing).Error; err != nil {
				return existing, false, dbError(err, "skill")
			}
			return existing, false, nil
		}
		return skill, false, apperr.Internal(err)
	}
	return skill, true, nil
}

type SkillUpdate struct {
	Name        *string
	Category    *string
	Description *string
}

func UpdateSkill(db *gorm.DB, id uuid.UUID, in SkillUpdate) (models.Skill, error) {
	skill, err := GetSkill(db, id)
	if err != nil {
		return skill, err
	}
	if in.Name != nil {
		name := strings.Join(strings.Fields(*in.Name), " ")
		if name == "" {
			return skill, apperr.Validation("skill name cannot be empty")
		}
		skill.Name = name
		skill.NormalizedName = models.NormalizeSkillName(name)
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			return skill, apperr.Validation("skill category cannot be empty")
		}
		skill.Category = category
	}
	if in.Description != nil {
		skill.Description = in.Description
	}
	if err := db.Save(&skill).Error; err != nil {
		return skill, dbError(err, "skill with that name")
	}
	return skill, nil
}

// DeleteSkill removes a skill nothing refers to. Referenced skills stay.
func DeleteSkill(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetSkill(tx, id); err != nil {
			return err
		}

		var refs int64
		if err := tx.Model(&models.UserSkill{}).Where("skill_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Internal(err)
		}
		if refs > 0 {
			return apperr.Conflict("skill is declared by %d ledger entries", refs)
		}
		if err := tx.Model(&models.Swap{}).Where("requester_skill_id = ? OR provider_skill_id = ?", id, id).Count(&refs).Error; err != nil {
			return apperr.Internal(err)
		}
		if refs > 0 {
			return apperr.Conflict("skill is referenced by %d swaps", refs)
		}
		if err := tx.Model(&models.Session{}).Where("skill_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Internal(err)
		}
		if refs > 0 {
			return apperr.Conflict("skill is referenced by %d sessions", refs)
		}

		if err := tx.Delete(&models.Skill{}, "id = ?", id).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}
