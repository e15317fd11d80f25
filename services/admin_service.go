package services

import (
	"strings"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserPage struct {
	Users      []models.User `json:"data"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
}

// ListUsers pages through accounts, optionally filtered by a case-insensitive
// search over name and email.
func ListUsers(db *gorm.DB, search string, p Paging) (UserPage, error) {
	limit, offset := p.normalize(10, 100)
	page := UserPage{Page: offset/limit + 1}

	q := db.Model(&models.User{})
	if search = strings.TrimSpace(search); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?", term, term, term)
	}
	if err := q.Count(&page.Total).Error; err != nil {
		return page, apperr.Internal(err)
	}
	if err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&page.Users).Error; err != nil {
		return page, apperr.Internal(err)
	}
	page.TotalPages = int((page.Total + int64(limit) - 1) / int64(limit))
	return page, nil
}

// SetUserActive enables or disables an account. Inactive users cannot log in
// and never appear as match candidates.
func SetUserActive(db *gorm.DB, userID uuid.UUID, active bool) (models.User, error) {
	res := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"is_active": active, "updated_at": timeNow()})
	if res.Error != nil {
		return models.User{}, apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.User{}, apperr.NotFound("user")
	}
	return GetUser(db, userID)
}

type Dashboard struct {
	TotalUsers         int64            `json:"totalUsers"`
	ActiveUsers        int64            `json:"activeUsers"`
	TotalSkills        int64            `json:"totalSkills"`
	SwapsByStatus      map[string]int64 `json:"swapsByStatus"`
	SessionsLast30Days int64            `json:"sessionsLast30Days"`
	RecentSwaps        []models.Swap    `json:"recentSwaps"`
}

func DashboardAnalytics(db *gorm.DB) (Dashboard, error) {
	d := Dashboard{SwapsByStatus: map[string]int64{}}
	if err := db.Model(&models.User{}).Count(&d.TotalUsers).Error; err != nil {
		return d, apperr.Internal(err)
	}
	if err := db.Model(&models.User{}).Where("is_active = ?", true).Count(&d.ActiveUsers).Error; err != nil {
		return d, apperr.Internal(err)
	}
	if err := db.Model(&models.Skill{}).Count(&d.TotalSkills).Error; err != nil {
		return d, apperr.Internal(err)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := db.Model(&models.Swap{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return d, apperr.Internal(err)
	}
	for _, r := range rows {
		d.SwapsByStatus[r.Status] = r.Count
	}

	since := timeNow().Add(-30 * 24 * time.Hour)
	if err := db.Model(&models.Session{}).Where("created_at > ?", since).Count(&d.SessionsLast30Days).Error; err != nil {
		return d, apperr.Internal(err)
	}
	if err := db.Order("created_at desc").Limit(5).Find(&d.RecentSwaps).Error; err != nil {
		return d, apperr.Internal(err)
	}
	return d, nil
}
