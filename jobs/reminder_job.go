package jobs

import (
	"time"

	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/notifications"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The window matches the five-minute schedule and is anchored to the tick, so
// each session falls in exactly one run even when cron fires late.
const (
	reminderLead   = 60 * time.Minute
	reminderWindow = 5 * time.Minute
)

var timeNow = func() time.Time { return time.Now().UTC() }

// SendSessionReminders emails both participants of every scheduled session
// starting 60 to 65 minutes after the current five-minute tick and pushes a
// realtime reminder. It returns the
// number of sessions reminded.
func SendSessionReminders(db *gorm.DB, pub services.Publisher) int {
	log := logger.L().With("job", "session_reminders")

	from := timeNow().Truncate(reminderWindow).Add(reminderLead)
	sessions, err := services.SessionsStartingBetween(db, from, from.Add(reminderWindow))
	if err != nil {
		log.Error("failed to load upcoming sessions", "error", err)
		return 0
	}

	for _, s := range sessions {
		for _, u := range []models.User{s.Teacher, s.Student} {
			mail := notifications.SessionReminder(u.FirstName, s.Title, s.ScheduledAt, s.MeetingLink)
			go notifications.SendEmail(u.FirstName, u.Email, mail.Subject, mail.HTML)
		}
		if pub != nil {
			pub.Publish([]uuid.UUID{s.TeacherID, s.StudentID}, websocket.Event{
				Type:    websocket.EventSessionReminder,
				SwapID:  s.SwapID,
				Content: s.Title,
				Data:    s,
			})
		}
	}
	if len(sessions) > 0 {
		log.Info("session reminders sent", "count", len(sessions))
	}
	return len(sessions)
}
