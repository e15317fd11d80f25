package jobs

import (
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/testutil"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
	to     [][]uuid.UUID
}

func (p *recordingPublisher) Publish(recipients []uuid.UUID, ev websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.to = append(p.to, recipients)
	p.events = append(p.events, ev)
}

func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

func acceptedSwap(t *testing.T, db *gorm.DB) models.Swap {
	t.Helper()
	guitar := testutil.CreateSkill(t, db, "Guitar", "Music")
	photo := testutil.CreateSkill(t, db, "Photography", "Arts")
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")
	return testutil.CreateSwap(t, db, alice, bob, guitar, photo, models.SwapAccepted)
}

func TestSendSessionRemindersWindow(t *testing.T) {
	db := testutil.DB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	swap := acceptedSwap(t, db)
	due := testutil.CreateSession(t, db, swap, now.Add(62*time.Minute), models.SessionScheduled)
	testutil.CreateSession(t, db, swap, now.Add(30*time.Minute), models.SessionScheduled)
	testutil.CreateSession(t, db, swap, now.Add(70*time.Minute), models.SessionScheduled)
	testutil.CreateSession(t, db, swap, now.Add(61*time.Minute), models.SessionCancelled)

	pub := &recordingPublisher{}
	assert.Equal(t, 1, SendSessionReminders(db, pub))

	require.Len(t, pub.events, 1)
	assert.Equal(t, websocket.EventSessionReminder, pub.events[0].Type)
	assert.Equal(t, swap.ID, pub.events[0].SwapID)
	assert.ElementsMatch(t, []uuid.UUID{due.TeacherID, due.StudentID}, pub.to[0])

	// five minutes later the same session has left the window
	freezeTime(t, now.Add(5*time.Minute))
	assert.Equal(t, 0, SendSessionReminders(db, nil))
}

func TestSendSessionRemindersLateTicksRemindOnce(t *testing.T) {
	db := testutil.DB(t)
	tick := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	swap := acceptedSwap(t, db)
	early := testutil.CreateSession(t, db, swap, tick.Add(64*time.Minute+50*time.Second), models.SessionScheduled)
	late := testutil.CreateSession(t, db, swap, tick.Add(65*time.Minute+10*time.Second), models.SessionScheduled)

	reminded := map[uuid.UUID]int{}
	pub := &recordingPublisher{}
	for _, fired := range []time.Time{tick.Add(40 * time.Second), tick.Add(5*time.Minute + 20*time.Second)} {
		freezeTime(t, fired)
		pub.events = nil
		SendSessionReminders(db, pub)
		for _, ev := range pub.events {
			s := ev.Data.(models.Session)
			reminded[s.ID]++
		}
	}

	assert.Equal(t, 1, reminded[early.ID])
	assert.Equal(t, 1, reminded[late.ID])
}

func TestCancelStaleSessions(t *testing.T) {
	db := testutil.DB(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	swap := acceptedSwap(t, db)
	stale := testutil.CreateSession(t, db, swap, now.Add(-5*time.Hour), models.SessionScheduled)
	recent := testutil.CreateSession(t, db, swap, now.Add(-90*time.Minute), models.SessionScheduled)
	done := testutil.CreateSession(t, db, swap, now.Add(-6*time.Hour), models.SessionCompleted)

	assert.Equal(t, 1, CancelStaleSessions(db, 2*time.Hour))

	statusOf := func(id uuid.UUID) string {
		var s models.Session
		require.NoError(t, db.First(&s, "id = ?", id).Error)
		return s.Status
	}
	assert.Equal(t, models.SessionCancelled, statusOf(stale.ID))
	assert.Equal(t, models.SessionScheduled, statusOf(recent.ID))
	assert.Equal(t, models.SessionCompleted, statusOf(done.ID))

	assert.Equal(t, 0, CancelStaleSessions(db, 2*time.Hour))
}

func TestNewSchedulerRegistersJobs(t *testing.T) {
	db := testutil.DB(t)
	c, err := NewScheduler(db, nil, 24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 2)
}
