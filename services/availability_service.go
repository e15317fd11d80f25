package services

import (
	"fmt"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilitySlot struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Timezone  string `json:"timezone"`
}

func ListAvailability(db *gorm.DB, userID uuid.UUID) ([]models.Availability, error) {
	var slots []models.Availability
	err := db.Where("user_id = ?", userID).
		Order("day_of_week asc, start_time asc").
		Find(&slots).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return slots, nil
}

// ReplaceAvailability swaps the user's whole weekly schedule for slots. An empty
// slice clears it.
func ReplaceAvailability(db *gorm.DB, userID uuid.UUID, slots []AvailabilitySlot) ([]models.Availability, error) {
	details := map[string]string{}
	for i, s := range slots {
		if err := validateSlot(s); err != nil {
			details[fmt.Sprintf("slots[%d]", i)] = err.Error()
		}
	}
	if len(details) > 0 {
		return nil, apperr.ValidationFields("invalid availability slots", details)
	}

	rows := make([]models.Availability, 0, len(slots))
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Availability{}).Error; err != nil {
			return apperr.Internal(err)
		}
		now := timeNow()
		for _, s := range slots {
			rows = append(rows, models.Availability{
				UserID:    userID,
				DayOfWeek: s.DayOfWeek,
				StartTime: s.StartTime,
				EndTime:   s.EndTime,
				Timezone:  s.Timezone,
				CreatedAt: now,
			})
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func validateSlot(s AvailabilitySlot) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("dayOfWeek must be between 0 (Sunday) and 6")
	}
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return fmt.Errorf("startTime must be HH:MM")
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return fmt.Errorf("endTime must be HH:MM")
	}
	if !end.After(start) {
		return fmt.Errorf("endTime must be after startTime")
	}
	if s.Timezone == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q", s.Timezone)
	}
	return nil
}
