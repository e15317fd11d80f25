package services

import (
	"context"
	"strings"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scheduleGrace tolerates clock skew between client and server.
const scheduleGrace = time.Minute

// LinkProvisioner supplies a meeting link when the caller did not give one.
type LinkProvisioner interface {
	Provision(ctx context.Context, s models.Session) (string, error)
}

type CreateSessionInput struct {
	ActorID     uuid.UUID
	SwapID      uuid.UUID
	TeacherID   uuid.UUID
	StudentID   uuid.UUID
	SkillID     uuid.UUID
	Title       string
	Description *string
	ScheduledAt time.Time
	Duration    int
	MeetingLink *string
	Notes       *string
}

type SessionView struct {
	models.Session
	IsTeacher bool       `json:"isTeacher"`
	Partner   PublicUser `json:"partner"`
	Skill     SkillRef   `json:"skill"`
}

func CreateSession(ctx context.Context, db *gorm.DB, links LinkProvisioner, in CreateSessionInput) (models.Session, error) {
	var session models.Session
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return session, apperr.Validation("title is required")
	}
	if in.Duration <= 0 {
		return session, apperr.Validation("duration must be a positive number of minutes")
	}
	now := timeNow()
	if in.ScheduledAt.IsZero() || in.ScheduledAt.Before(now.Add(-scheduleGrace)) {
		return session, apperr.Validation("scheduledAt must not be in the past")
	}

	var swap models.Swap
	if err := db.First(&swap, "id = ?", in.SwapID).Error; err != nil {
		return session, dbError(err, "swap")
	}
	if _, ok := OtherParticipant(swap.RequesterID, swap.ProviderID, in.ActorID); !ok {
		return session, apperr.Unauthorized("you are not a participant of this swap")
	}
	if swap.Status != models.SwapAccepted {
		return session, apperr.PreconditionFailed("sessions can only be scheduled for accepted swaps, this swap is %s", swap.Status)
	}

	student, ok := OtherParticipant(swap.RequesterID, swap.ProviderID, in.TeacherID)
	if !ok || student != in.StudentID {
		return session, apperr.Validation("teacher and student must be the two participants of the swap")
	}
	taught := swap.RequesterSkillID
	if in.TeacherID == swap.ProviderID {
		taught = swap.ProviderSkillID
	}
	if in.SkillID != taught {
		return session, apperr.Validation("skill must be the one the teacher offers in this swap")
	}

	session = models.Session{
		SwapID:      swap.ID,
		TeacherID:   in.TeacherID,
		StudentID:   in.StudentID,
		SkillID:     in.SkillID,
		Title:       in.Title,
		Description: in.Description,
		ScheduledAt: in.ScheduledAt.UTC(),
		Duration:    in.Duration,
		Status:      models.SessionScheduled,
		MeetingLink: in.MeetingLink,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if session.MeetingLink != nil && strings.TrimSpace(*session.MeetingLink) == "" {
		session.MeetingLink = nil
	}
	if session.MeetingLink == nil && links != nil {
		link, err := links.Provision(ctx, session)
		if err != nil {
			logger.L().Warn("meeting link provisioning failed, creating session without link",
				"swap_id", swap.ID, "error", err)
		} else {
			session.MeetingLink = &link
		}
	}

	if err := db.Create(&session).Error; err != nil {
		return session, apperr.Internal(err)
	}
	return session, nil
}

// UpdateSessionStatus moves a session along its lifecycle. Either participant may act.
func UpdateSessionStatus(db *gorm.DB, sessionID, actorID uuid.UUID, next string) (models.Session, error) {
	var session models.Session
	if !IsSessionStatus(next) {
		return session, apperr.Validation("status must be one of scheduled, in_progress, completed, cancelled")
	}
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		return session, dbError(err, "session")
	}
	if _, ok := OtherParticipant(session.TeacherID, session.StudentID, actorID); !ok {
		return session, apperr.Unauthorized("you are not a participant of this session")
	}
	if err := transitionSession(db, &session, next); err != nil {
		return session, err
	}
	return session, nil
}

func transitionSession(db *gorm.DB, session *models.Session, next string) error {
	if !CanTransitionSession(session.Status, next) {
		return apperr.InvalidTransition("session", session.Status, next)
	}
	now := timeNow()
	res := db.Model(&models.Session{}).
		Where("id = ? AND status = ?", session.ID, session.Status).
		Updates(map[string]interface{}{"status": next, "updated_at": now})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict("session was modified by another request, reload and retry")
	}
	session.Status = next
	session.UpdatedAt = now
	return nil
}

// SessionsForUser lists the user's sessions, latest scheduled first.
func SessionsForUser(db *gorm.DB, userID uuid.UUID) ([]SessionView, error) {
	var sessions []models.Session
	err := db.Preload("Teacher").Preload("Student").Preload("Skill").
		Where("teacher_id = ? OR student_id = ?", userID, userID).
		Order("scheduled_at desc").
		Find(&sessions).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return sessionViews(sessions, userID), nil
}

// UpcomingSessions returns scheduled sessions that have not started, earliest first.
func UpcomingSessions(db *gorm.DB, userID uuid.UUID, limit int) ([]SessionView, error) {
	if limit <= 0 {
		limit = 5
	}
	var sessions []models.Session
	err := db.Preload("Teacher").Preload("Student").Preload("Skill").
		Where("(teacher_id = ? OR student_id = ?)", userID, userID).
		Where("status = ? AND scheduled_at > ?", models.SessionScheduled, timeNow()).
		Order("scheduled_at asc").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return sessionViews(sessions, userID), nil
}

func sessionViews(sessions []models.Session, viewer uuid.UUID) []SessionView {
	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		partner := s.Student
		if viewer == s.StudentID {
			partner = s.Teacher
		}
		views = append(views, SessionView{
			Session:   s,
			IsTeacher: viewer == s.TeacherID,
			Partner:   PublicView(partner),
			Skill:     SkillView(s.Skill),
		})
	}
	return views
}

// SessionsStartingBetween returns scheduled sessions whose start lies in [from, to).
func SessionsStartingBetween(db *gorm.DB, from, to time.Time) ([]models.Session, error) {
	var sessions []models.Session
	err := db.Preload("Teacher").Preload("Student").Preload("Skill").
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?", models.SessionScheduled, from.UTC(), to.UTC()).
		Order("scheduled_at asc").
		Find(&sessions).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return sessions, nil
}

// CancelStaleSessions cancels scheduled sessions that ended before cutoff and
// reports how many were cancelled. Rows changed concurrently are skipped.
func CancelStaleSessions(db *gorm.DB, cutoff time.Time) (int, error) {
	var candidates []models.Session
	err := db.Where("status = ? AND scheduled_at < ?", models.SessionScheduled, cutoff.UTC()).
		Find(&candidates).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}

	cancelled := 0
	for i := range candidates {
		s := &candidates[i]
		if !s.EndsAt().Before(cutoff) {
			continue
		}
		if err := transitionSession(db, s, models.SessionCancelled); err != nil {
			if apperr.KindOf(err) == apperr.KindConflict {
				continue
			}
			return cancelled, err
		}
		cancelled++
	}
	return cancelled, nil
}
