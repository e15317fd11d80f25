package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserRoleMember = "member"
	UserRoleAdmin  = "admin"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName       string    `gorm:"size:100;not null" json:"firstName"`
	LastName        string    `gorm:"size:100" json:"lastName"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Role            string    `gorm:"size:20;not null;default:'member'" json:"role"`
	ProfileImageURL *string   `gorm:"size:255" json:"profileImageUrl"`
	Bio             *string   `gorm:"type:text" json:"bio"`
	Location        *string   `gorm:"size:255" json:"location"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
