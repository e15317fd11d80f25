package handlers

import (
	"time"

	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	SwapID      uuid.UUID `json:"swapId" validate:"required"`
	TeacherID   uuid.UUID `json:"teacherId" validate:"required"`
	StudentID   uuid.UUID `json:"studentId" validate:"required"`
	SkillID     uuid.UUID `json:"skillId" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description *string   `json:"description"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
	Duration    int       `json:"duration" validate:"required,gt=0"`
	MeetingLink *string   `json:"meetingLink" validate:"omitempty,url"`
	Notes       *string   `json:"notes"`
}

func GetSessions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	sessions, err := services.SessionsForUser(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

func GetUpcomingSessions(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	sessions, err := services.UpcomingSessions(db(c), userID, config.Int("UPCOMING_PAGE_SIZE", 5))
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

func CreateSession(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateSessionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	session, err := services.CreateSession(c.UserContext(), db(c), Meetings, services.CreateSessionInput{
		ActorID:     userID,
		SwapID:      req.SwapID,
		TeacherID:   req.TeacherID,
		StudentID:   req.StudentID,
		SkillID:     req.SkillID,
		Title:       req.Title,
		Description: req.Description,
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}

	publish([]uuid.UUID{session.TeacherID, session.StudentID}, websocket.Event{
		Type:     websocket.EventSessionScheduled,
		SwapID:   session.SwapID,
		SenderID: userID,
		Content:  session.Title,
		Data:     session,
	})
	return c.Status(fiber.StatusCreated).JSON(session)
}

func UpdateSessionStatus(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	sessionID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	session, err := services.UpdateSessionStatus(db(c), sessionID, userID, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(session)
}
