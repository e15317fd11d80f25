package jobs

import (
	"time"

	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/services"
	"gorm.io/gorm"
)

// CancelStaleSessions cancels sessions still marked scheduled more than
// staleAfter after they should have ended.
func CancelStaleSessions(db *gorm.DB, staleAfter time.Duration) int {
	log := logger.L().With("job", "stale_sessions")

	n, err := services.CancelStaleSessions(db, timeNow().Add(-staleAfter))
	if err != nil {
		log.Error("failed to cancel stale sessions", "error", err, "cancelled", n)
		return n
	}
	if n > 0 {
		log.Info("cancelled stale sessions", "count", n)
	}
	return n
}
