package services

import (
	"strings"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	User   models.User        `json:"user"`
	Skills []models.UserSkill `json:"skills"`
	Stats  Stats              `json:"stats"`
	Rating Rating             `json:"rating"`
}

// ProfileUpdate is partial: nil fields are left alone.
type ProfileUpdate struct {
	FirstName       *string
	LastName        *string
	Bio             *string
	Location        *string
	ProfileImageURL *string
}

func GetUser(db *gorm.DB, userID uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return user, dbError(err, "user")
	}
	return user, nil
}

func GetProfile(db *gorm.DB, userID uuid.UUID) (Profile, error) {
	var p Profile
	user, err := GetUser(db, userID)
	if err != nil {
		return p, err
	}
	skills, err := ListUserSkills(db, userID)
	if err != nil {
		return p, err
	}
	stats, err := StatsFor(db, userID)
	if err != nil {
		return p, err
	}
	p = Profile{
		User:   user,
		Skills: skills,
		Stats:  stats,
		Rating: Rating{Average: stats.AverageRating, Count: stats.ReviewCount},
	}
	return p, nil
}

func UpdateProfile(db *gorm.DB, userID uuid.UUID, in ProfileUpdate) (models.User, error) {
	user, err := GetUser(db, userID)
	if err != nil {
		return user, err
	}
	updates := map[string]interface{}{}
	if in.FirstName != nil {
		name := strings.TrimSpace(*in.FirstName)
		if name == "" {
			return user, apperr.Validation("firstName cannot be empty")
		}
		updates["first_name"] = name
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Bio != nil {
		updates["bio"] = *in.Bio
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.ProfileImageURL != nil {
		updates["profile_image_url"] = *in.ProfileImageURL
	}
	if len(updates) == 0 {
		return user, nil
	}
	updates["updated_at"] = timeNow()
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		return user, apperr.Internal(err)
	}
	return GetUser(db, userID)
}
