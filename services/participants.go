package services

import (
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
)

// OtherParticipant returns whichever of a and b is not caller. ok is false when the
// caller is neither of them.
func OtherParticipant(a, b, caller uuid.UUID) (other uuid.UUID, ok bool) {
	switch caller {
	case a:
		return b, true
	case b:
		return a, true
	}
	return uuid.Nil, false
}

type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	Location        *string   `json:"location,omitempty"`
}

func PublicView(u models.User) PublicUser {
	return PublicUser{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Location:        u.Location,
	}
}

type SkillRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
}

func SkillView(s models.Skill) SkillRef {
	return SkillRef{ID: s.ID, Name: s.Name, Category: s.Category}
}
