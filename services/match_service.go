package services

import (
	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match is a partner whose ledger complements the caller's. WantsToLearn is a
// skill the caller teaches; OffersToTeach is a skill the caller wants.
type Match struct {
	Partner       PublicUser `json:"partner"`
	WantsToLearn  SkillRef   `json:"wantsToLearn"`
	OffersToTeach SkillRef   `json:"offersToTeach"`
}

type MatchOptions struct {
	Limit  int
	Offset int
	// ExcludeSwapped hides partners with a pending or accepted swap with the caller.
	ExcludeSwapped bool
}

type matchRow struct {
	PartnerID     uuid.UUID
	WantsSkillID  uuid.UUID
	OffersSkillID uuid.UUID
}

const matchQuery = `
SELECT pl.user_id AS partner_id, ut.skill_id AS wants_skill_id, ul.skill_id AS offers_skill_id
FROM user_skills ut
JOIN user_skills pl ON pl.skill_id = ut.skill_id AND pl.role = ? AND pl.user_id <> ut.user_id
JOIN user_skills pt ON pt.user_id = pl.user_id AND pt.role = ?
JOIN user_skills ul ON ul.user_id = ut.user_id AND ul.role = ? AND ul.skill_id = pt.skill_id
JOIN users p ON p.id = pl.user_id AND p.is_active = ?
WHERE ut.user_id = ? AND ut.role = ?`

const excludeSwappedClause = `
AND NOT EXISTS (
	SELECT 1 FROM swaps s
	WHERE s.status IN (?, ?)
	AND ((s.requester_id = ut.user_id AND s.provider_id = pl.user_id)
	  OR (s.requester_id = pl.user_id AND s.provider_id = ut.user_id))
)`

// FindMatches returns one entry per complementary partner, ordered by partner id.
// When a partner complements the caller on several skill pairs the lowest
// (wants, offers) pair by id is reported.
func FindMatches(db *gorm.DB, userID uuid.UUID, opts MatchOptions) ([]Match, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count == 0 {
		return nil, apperr.NotFound("user")
	}

	query := matchQuery
	args := []interface{}{
		models.SkillRoleLearn, models.SkillRoleTeach, models.SkillRoleLearn, true,
		userID, models.SkillRoleTeach,
	}
	if opts.ExcludeSwapped {
		query += excludeSwappedClause
		args = append(args, models.SwapPending, models.SwapAccepted)
	}
	query += "\nORDER BY pl.user_id, ut.skill_id, ul.skill_id"

	var rows []matchRow
	if err := db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	picked := make([]matchRow, 0, len(rows))
	for _, r := range rows {
		if n := len(picked); n > 0 && picked[n-1].PartnerID == r.PartnerID {
			continue
		}
		picked = append(picked, r)
	}

	if opts.Offset > 0 {
		if opts.Offset >= len(picked) {
			return []Match{}, nil
		}
		picked = picked[opts.Offset:]
	}
	if opts.Limit > 0 && len(picked) > opts.Limit {
		picked = picked[:opts.Limit]
	}
	if len(picked) == 0 {
		return []Match{}, nil
	}

	partnerIDs := make([]uuid.UUID, 0, len(picked))
	skillIDs := make([]uuid.UUID, 0, len(picked)*2)
	for _, r := range picked {
		partnerIDs = append(partnerIDs, r.PartnerID)
		skillIDs = append(skillIDs, r.WantsSkillID, r.OffersSkillID)
	}

	var partners []models.User
	if err := db.Where("id IN ?", partnerIDs).Find(&partners).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	var skills []models.Skill
	if err := db.Where("id IN ?", skillIDs).Find(&skills).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	userByID := make(map[uuid.UUID]models.User, len(partners))
	for _, u := range partners {
		userByID[u.ID] = u
	}
	skillByID := make(map[uuid.UUID]models.Skill, len(skills))
	for _, s := range skills {
		skillByID[s.ID] = s
	}

	matches := make([]Match, 0, len(picked))
	for _, r := range picked {
		matches = append(matches, Match{
			Partner:       PublicView(userByID[r.PartnerID]),
			WantsToLearn:  SkillView(skillByID[r.WantsSkillID]),
			OffersToTeach: SkillView(skillByID[r.OffersSkillID]),
		})
	}
	return matches, nil
}
