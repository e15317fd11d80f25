package services

import (
	"strings"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSwapInput struct {
	RequesterID      uuid.UUID
	ProviderID       uuid.UUID
	RequesterSkillID uuid.UUID
	ProviderSkillID  uuid.UUID
	Message          *string
}

// SwapView is a swap as seen by one of its participants.
type SwapView struct {
	models.Swap
	IsRequester    bool       `json:"isRequester"`
	Partner        PublicUser `json:"partner"`
	RequesterSkill SkillRef   `json:"requesterSkill"`
	ProviderSkill  SkillRef   `json:"providerSkill"`
}

func CreateSwap(db *gorm.DB, in CreateSwapInput) (models.Swap, error) {
	var swap models.Swap
	if in.RequesterID == in.ProviderID {
		return swap, apperr.Validation("cannot request a swap with yourself")
	}
	if in.ProviderID == uuid.Nil || in.RequesterSkillID == uuid.Nil || in.ProviderSkillID == uuid.Nil {
		return swap, apperr.Validation("providerId, requesterSkillId and providerSkillId are required")
	}
	if in.Message != nil {
		trimmed := strings.TrimSpace(*in.Message)
		if trimmed == "" {
			in.Message = nil
		} else {
			in.Message = &trimmed
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var provider models.User
		if err := tx.Where("id = ? AND is_active = ?", in.ProviderID, true).First(&provider).Error; err != nil {
			return dbError(err, "provider")
		}
		for _, id := range []uuid.UUID{in.RequesterSkillID, in.ProviderSkillID} {
			if _, err := GetSkill(tx, id); err != nil {
				return err
			}
		}

		ok, err := HasDeclared(tx, in.RequesterID, in.RequesterSkillID, models.SkillRoleTeach)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("you have not declared the offered skill as one you teach")
		}
		ok, err = HasDeclared(tx, in.ProviderID, in.ProviderSkillID, models.SkillRoleTeach)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("the provider does not teach the requested skill")
		}

		var dup int64
		if err := tx.Model(&models.Swap{}).
			Where("requester_id = ? AND provider_id = ? AND requester_skill_id = ? AND provider_skill_id = ? AND status = ?",
				in.RequesterID, in.ProviderID, in.RequesterSkillID, in.ProviderSkillID, models.SwapPending).
			Count(&dup).Error; err != nil {
			return apperr.Internal(err)
		}
		if dup > 0 {
			return apperr.Conflict("an identical swap request is already pending")
		}

		now := timeNow()
		swap = models.Swap{
			RequesterID:      in.RequesterID,
			ProviderID:       in.ProviderID,
			RequesterSkillID: in.RequesterSkillID,
			ProviderSkillID:  in.ProviderSkillID,
			Status:           models.SwapPending,
			Message:          in.Message,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := tx.Create(&swap).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	return swap, err
}

// UpdateSwapStatus moves a swap along its lifecycle on behalf of actorID.
// Only the provider may accept or reject; either participant may complete.
func UpdateSwapStatus(db *gorm.DB, swapID, actorID uuid.UUID, next string) (models.Swap, error) {
	var swap models.Swap
	if !IsSwapStatus(next) {
		return swap, apperr.Validation("status must be one of pending, accepted, rejected, completed")
	}
	if err := db.First(&swap, "id = ?", swapID).Error; err != nil {
		return swap, dbError(err, "swap")
	}
	if _, ok := OtherParticipant(swap.RequesterID, swap.ProviderID, actorID); !ok {
		return swap, apperr.Unauthorized("you are not a participant of this swap")
	}
	if !CanTransitionSwap(swap.Status, next) {
		return swap, apperr.InvalidTransition("swap", swap.Status, next)
	}
	if (next == models.SwapAccepted || next == models.SwapRejected) && actorID != swap.ProviderID {
		return swap, apperr.Unauthorized("only the provider can %s this swap", strings.TrimSuffix(next, "ed"))
	}
	if err := transitionSwap(db, &swap, next); err != nil {
		return swap, err
	}
	return swap, nil
}

// transitionSwap writes next only if the row still holds the status swap was
// read with. A lost race surfaces as a conflict.
func transitionSwap(db *gorm.DB, swap *models.Swap, next string) error {
	if !CanTransitionSwap(swap.Status, next) {
		return apperr.InvalidTransition("swap", swap.Status, next)
	}
	now := timeNow()
	res := db.Model(&models.Swap{}).
		Where("id = ? AND status = ?", swap.ID, swap.Status).
		Updates(map[string]interface{}{"status": next, "updated_at": now})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("swap was modified by another request, reload and retry")
	}
	swap.Status = next
	swap.UpdatedAt = now
	return nil
}

// GetSwapForParticipant loads a swap the caller takes part in.
func GetSwapForParticipant(db *gorm.DB, swapID, userID uuid.UUID) (models.Swap, error) {
	var swap models.Swap
	if err := db.First(&swap, "id = ?", swapID).Error; err != nil {
		return swap, dbError(err, "swap")
	}
	if _, ok := OtherParticipant(swap.RequesterID, swap.ProviderID, userID); !ok {
		return swap, apperr.Unauthorized("you are not a participant of this swap")
	}
	return swap, nil
}

// SwapsForUser lists every swap the user takes part in, most recently changed
// first. An empty status means all statuses.
func SwapsForUser(db *gorm.DB, userID uuid.UUID, status string) ([]SwapView, error) {
	if status != "" && !IsSwapStatus(status) {
		return nil, apperr.Validation("unknown swap status %q", status)
	}
	q := db.Preload("Requester").Preload("Provider").
		Preload("RequesterSkill").Preload("ProviderSkill").
		Where("(requester_id = ? OR provider_id = ?)", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var swaps []models.Swap
	if err := q.Order("updated_at desc").Order("id").Find(&swaps).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	views := make([]SwapView, 0, len(swaps))
	for _, s := range swaps {
		views = append(views, swapView(s, userID))
	}
	return views, nil
}

func swapView(s models.Swap, viewer uuid.UUID) SwapView {
	partner := s.Provider
	if viewer == s.ProviderID {
		partner = s.Requester
	}
	return SwapView{
		Swap:           s,
		IsRequester:    viewer == s.RequesterID,
		Partner:        PublicView(partner),
		RequesterSkill: SkillView(s.RequesterSkill),
		ProviderSkill:  SkillView(s.ProviderSkill),
	}
}
