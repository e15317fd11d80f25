package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func CreateUser(tb testing.TB, db *gorm.DB, firstName string) models.User {
	tb.Helper()
	u := models.User{
		FirstName: firstName,
		LastName:  "Tester",
		Email:     strings.ToLower(firstName) + "-" + uuid.NewString()[:8] + "@example.com",
		Password:  "x",
		Role:      models.UserRoleMember,
		IsActive:  true,
	}
	if err := db.Create(&u).Error; err != nil {
		tb.Fatalf("create user: %v", err)
	}
	return u
}

func CreateSkill(tb testing.TB, db *gorm.DB, name, category string) models.Skill {
	tb.Helper()
	s := models.Skill{Name: name, NormalizedName: models.NormalizeSkillName(name), Category: category}
	if err := db.Create(&s).Error; err != nil {
		tb.Fatalf("create skill: %v", err)
	}
	return s
}

func Declare(tb testing.TB, db *gorm.DB, user models.User, skill models.Skill, role string) models.UserSkill {
	tb.Helper()
	us := models.UserSkill{UserID: user.ID, SkillID: skill.ID, Role: role, Level: models.LevelIntermediate}
	if err := db.Create(&us).Error; err != nil {
		tb.Fatalf("declare skill: %v", err)
	}
	return us
}

func CreateSwap(tb testing.TB, db *gorm.DB, requester, provider models.User, reqSkill, provSkill models.Skill, status string) models.Swap {
	tb.Helper()
	now := time.Now().UTC()
	sw := models.Swap{
		RequesterID:      requester.ID,
		ProviderID:       provider.ID,
		RequesterSkillID: reqSkill.ID,
		ProviderSkillID:  provSkill.ID,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := db.Create(&sw).Error; err != nil {
		tb.Fatalf("create swap: %v", err)
	}
	return sw
}

func CreateSession(tb testing.TB, db *gorm.DB, swap models.Swap, at time.Time, status string) models.Session {
	tb.Helper()
	s := models.Session{
		SwapID:      swap.ID,
		TeacherID:   swap.RequesterID,
		StudentID:   swap.ProviderID,
		SkillID:     swap.RequesterSkillID,
		Title:       "Session",
		ScheduledAt: at.UTC(),
		Duration:    60,
		Status:      status,
	}
	if err := db.Create(&s).Error; err != nil {
		tb.Fatalf("create session: %v", err)
	}
	return s
}
