package handlers

import (
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/skill_swap/database"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/testutil"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	mu     sync.Mutex
	events []websocket.Event
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, v.(websocket.Event))
	return nil
}

func (r *recordingConn) WriteControl(int, []byte, time.Time) error { return nil }
func (r *recordingConn) SetWriteDeadline(time.Time) error          { return nil }
func (r *recordingConn) Close() error                              { return nil }

func (r *recordingConn) received() []websocket.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]websocket.Event(nil), r.events...)
}

func useRealtime(t *testing.T) *websocket.Hub {
	t.Helper()
	db := testutil.DB(t)
	prevDB, prevHub := database.DB, Realtime
	database.DB = db
	Realtime = websocket.NewHub(nil)
	t.Cleanup(func() {
		Realtime.Close()
		database.DB, Realtime = prevDB, prevHub
	})
	return Realtime
}

func TestRelayFrameReachesOnlyThePartner(t *testing.T) {
	hub := useRealtime(t)
	db := database.DB
	guitar := testutil.CreateSkill(t, db, "Guitar", "Music")
	photo := testutil.CreateSkill(t, db, "Photography", "Arts")
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")
	carol := testutil.CreateUser(t, db, "Carol")
	swap := testutil.CreateSwap(t, db, alice, bob, guitar, photo, models.SwapAccepted)

	aliceConn, bobConn, carolConn := &recordingConn{}, &recordingConn{}, &recordingConn{}
	hub.Register(alice.ID, aliceConn)
	hub.Register(bob.ID, bobConn)
	hub.Register(carol.ID, carolConn)

	relayFrame(alice.ID, wsClientFrame{Type: websocket.EventTyping, SwapID: swap.ID.String(), Content: "..."})

	require.Eventually(t, func() bool { return len(bobConn.received()) == 1 }, time.Second, 5*time.Millisecond)
	got := bobConn.received()[0]
	assert.Equal(t, websocket.EventTyping, got.Type)
	assert.Equal(t, swap.ID, got.SwapID)
	assert.Equal(t, alice.ID, got.SenderID)
	assert.Equal(t, "...", got.Content)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, aliceConn.received())
	assert.Empty(t, carolConn.received())
}

func TestRelayFrameRejections(t *testing.T) {
	hub := useRealtime(t)
	db := database.DB
	guitar := testutil.CreateSkill(t, db, "Guitar", "Music")
	photo := testutil.CreateSkill(t, db, "Photography", "Arts")
	alice := testutil.CreateUser(t, db, "Alice")
	bob := testutil.CreateUser(t, db, "Bob")
	carol := testutil.CreateUser(t, db, "Carol")
	swap := testutil.CreateSwap(t, db, alice, bob, guitar, photo, models.SwapAccepted)

	aliceConn, bobConn, carolConn := &recordingConn{}, &recordingConn{}, &recordingConn{}
	hub.Register(alice.ID, aliceConn)
	hub.Register(bob.ID, bobConn)
	hub.Register(carol.ID, carolConn)

	relayFrame(carol.ID, wsClientFrame{Type: websocket.EventMessage, SwapID: swap.ID.String(), Content: "let me in"})
	require.Eventually(t, func() bool { return len(carolConn.received()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, websocket.EventError, carolConn.received()[0].Type)
	assert.Equal(t, "you are not a participant of this swap", carolConn.received()[0].Content)

	relayFrame(alice.ID, wsClientFrame{Type: websocket.EventTyping, SwapID: uuid.NewString()})
	relayFrame(alice.ID, wsClientFrame{Type: websocket.EventTyping, SwapID: "nope"})
	relayFrame(alice.ID, wsClientFrame{Type: "auth", SwapID: swap.ID.String()})
	require.Eventually(t, func() bool { return len(aliceConn.received()) == 3 }, time.Second, 5*time.Millisecond)

	var messages []string
	for _, ev := range aliceConn.received() {
		assert.Equal(t, websocket.EventError, ev.Type)
		messages = append(messages, ev.Content)
	}
	assert.Equal(t, []string{"swap not found", "invalid swapId", "unsupported frame type"}, messages)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, bobConn.received())
}
