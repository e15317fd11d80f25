package jobs

import (
	"time"

	"github.com/anjiri1684/skill_swap/services"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const everyFiveMinutes = "*/5 * * * *"

// NewScheduler registers the background jobs on a fresh cron. The caller starts and stops it.
func NewScheduler(db *gorm.DB, pub services.Publisher, staleAfter time.Duration) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(everyFiveMinutes, func() { SendSessionReminders(db, pub) }); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(everyFiveMinutes, func() { CancelStaleSessions(db, staleAfter) }); err != nil {
		return nil, err
	}
	return c, nil
}
