package services

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []websocket.Event
	to     [][]uuid.UUID
}

func (p *recordingPublisher) Publish(recipients []uuid.UUID, ev websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	p.to = append(p.to, recipients)
}

func TestSendMessagePublishesToParticipantsOnly(t *testing.T) {
	f, swap := acceptedSwap(t)
	pub := &recordingPublisher{}

	msg, err := SendMessage(f.db, pub, SendMessageInput{
		SwapID:   swap.ID,
		SenderID: f.requester.ID,
		Content:  "  hello there ",
	})
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, msg.ReceiverID)
	assert.Equal(t, "hello there", msg.Content)
	assert.Nil(t, msg.ReadAt)

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, websocket.EventMessage, ev.Type)
	assert.Equal(t, swap.ID, ev.SwapID)
	assert.Equal(t, f.requester.ID, ev.SenderID)
	assert.Equal(t, "hello there", ev.Content)
	assert.ElementsMatch(t, []uuid.UUID{f.requester.ID, f.provider.ID}, pub.to[0])
}

func TestSendMessageValidation(t *testing.T) {
	f, swap := acceptedSwap(t)

	_, err := SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: f.requester.ID, Content: "   "})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: f.requester.ID, Content: strings.Repeat("x", 5001)})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: f.requester.ID, ReceiverID: f.requester.ID, Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: uuid.New(), Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = SendMessage(f.db, nil, SendMessageInput{SwapID: uuid.New(), SenderID: f.requester.ID, Content: "hi"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	msg, err := SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: f.provider.ID, ReceiverID: f.requester.ID, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, f.requester.ID, msg.ReceiverID)
}

func TestMarkMessageReadIsIdempotent(t *testing.T) {
	f, swap := acceptedSwap(t)
	msg, err := SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: f.requester.ID, Content: "ping"})
	require.NoError(t, err)

	_, err = MarkMessageRead(f.db, msg.ID, f.requester.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized, "the sender cannot mark it read")

	first, err := MarkMessageRead(f.db, msg.ID, f.provider.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ReadAt)

	time.Sleep(5 * time.Millisecond)

	second, err := MarkMessageRead(f.db, msg.ID, f.provider.ID)
	require.NoError(t, err)
	require.NotNil(t, second.ReadAt)
	assert.True(t, first.ReadAt.Equal(*second.ReadAt))

	_, err = MarkMessageRead(f.db, uuid.New(), f.provider.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecentMessagesAndUnread(t *testing.T) {
	f, swap := acceptedSwap(t)
	base := time.Now().UTC().Add(-time.Hour)

	// alternate senders, strictly increasing timestamps
	var ids []uuid.UUID
	for i := 0; i < 25; i++ {
		sender, receiver := f.requester.ID, f.provider.ID
		if i%2 == 1 {
			sender, receiver = receiver, sender
		}
		m := models.Message{
			SwapID:     swap.ID,
			SenderID:   sender,
			ReceiverID: receiver,
			Content:    "m",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, f.db.Create(&m).Error)
		ids = append(ids, m.ID)
	}

	recent, err := RecentMessages(f.db, f.provider.ID, 20)
	require.NoError(t, err)
	require.Len(t, recent, 20)
	assert.Equal(t, ids[24], recent[0].ID)
	for i := 1; i < len(recent); i++ {
		assert.True(t, recent[i-1].CreatedAt.After(recent[i].CreatedAt))
	}
	for _, m := range recent {
		assert.Equal(t, m.SenderID == f.provider.ID, m.IsFromUser)
		assert.Equal(t, !m.IsFromUser, m.Unread)
	}

	unread, err := UnreadCount(f.db, f.provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 13, unread)

	_, err = MarkMessageRead(f.db, ids[24], f.provider.ID)
	require.NoError(t, err)
	unread, err = UnreadCount(f.db, f.provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 12, unread)

	recent, err = RecentMessages(f.db, f.provider.ID, 20)
	require.NoError(t, err)
	assert.False(t, recent[0].Unread)
}

func TestMessagesForSwapOldestFirstAndPaged(t *testing.T) {
	f, swap := acceptedSwap(t)
	for i := 0; i < 3; i++ {
		_, err := SendMessage(f.db, nil, SendMessageInput{SwapID: swap.ID, SenderID: f.requester.ID, Content: string(rune('a' + i))})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	all, err := MessagesForSwap(f.db, swap.ID, f.provider.ID, Paging{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Content)
	assert.Equal(t, "c", all[2].Content)
	assert.Equal(t, f.requester.ID, all[0].Sender.ID)

	page, err := MessagesForSwap(f.db, swap.ID, f.provider.ID, Paging{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].Content)

	_, err = MessagesForSwap(f.db, swap.ID, uuid.New(), Paging{})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestRecentMessagesBreaksTimestampTies(t *testing.T) {
	f, swap := acceptedSwap(t)
	at := time.Now().UTC().Truncate(time.Second)

	var ids []string
	for i := 0; i < 4; i++ {
		m := models.Message{SwapID: swap.ID, SenderID: f.requester.ID, ReceiverID: f.provider.ID, Content: "tie", CreatedAt: at}
		require.NoError(t, f.db.Create(&m).Error)
		ids = append(ids, m.ID.String())
	}
	sort.Strings(ids)

	for i := 0; i < 3; i++ {
		recent, err := RecentMessages(f.db, f.provider.ID, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, ids[0], recent[0].ID.String())
		assert.Equal(t, ids[1], recent[1].ID.String())
	}
}
