package services

import (
	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Stats struct {
	ActiveSwaps     int64   `json:"activeSwaps"`
	CompletedSwaps  int64   `json:"completedSwaps"`
	PendingRequests int64   `json:"pendingRequests"`
	TotalSessions   int64   `json:"totalSessions"`
	AverageRating   float64 `json:"averageRating"`
	ReviewCount     int64   `json:"reviewCount"`
}

func StatsFor(db *gorm.DB, userID uuid.UUID) (Stats, error) {
	var st Stats
	involving := "(requester_id = ? OR provider_id = ?)"

	if err := db.Model(&models.Swap{}).Where(involving, userID, userID).
		Where("status = ?", models.SwapAccepted).Count(&st.ActiveSwaps).Error; err != nil {
		return st, apperr.Internal(err)
	}
	if err := db.Model(&models.Swap{}).Where(involving, userID, userID).
		Where("status = ?", models.SwapCompleted).Count(&st.CompletedSwaps).Error; err != nil {
		return st, apperr.Internal(err)
	}
	if err := db.Model(&models.Swap{}).
		Where("provider_id = ? AND status = ?", userID, models.SwapPending).
		Count(&st.PendingRequests).Error; err != nil {
		return st, apperr.Internal(err)
	}
	if err := db.Model(&models.Session{}).
		Where("teacher_id = ? OR student_id = ?", userID, userID).
		Count(&st.TotalSessions).Error; err != nil {
		return st, apperr.Internal(err)
	}

	rating, err := RatingFor(db, userID)
	if err != nil {
		return st, err
	}
	st.AverageRating = rating.Average
	st.ReviewCount = rating.Count
	return st, nil
}
