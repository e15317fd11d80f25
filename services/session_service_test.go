package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLinks struct {
	link string
	err  error
}

func (s stubLinks) Provision(ctx context.Context, _ models.Session) (string, error) {
	return s.link, s.err
}

func acceptedSwap(t *testing.T) (swapFixture, models.Swap) {
	t.Helper()
	f := newSwapFixture(t)
	swap := testutil.CreateSwap(t, f.db, f.requester, f.provider, f.guitar, f.photo, models.SwapAccepted)
	return f, swap
}

func sessionInput(f swapFixture, swap models.Swap) CreateSessionInput {
	return CreateSessionInput{
		ActorID:     f.requester.ID,
		SwapID:      swap.ID,
		TeacherID:   f.requester.ID,
		StudentID:   f.provider.ID,
		SkillID:     f.guitar.ID,
		Title:       "Chords 101",
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Duration:    45,
	}
}

func TestCreateSession(t *testing.T) {
	f, swap := acceptedSwap(t)

	s, err := CreateSession(context.Background(), f.db, stubLinks{link: "https://meet.example/abc"}, sessionInput(f, swap))
	require.NoError(t, err)
	assert.Equal(t, models.SessionScheduled, s.Status)
	require.NotNil(t, s.MeetingLink)
	assert.Equal(t, "https://meet.example/abc", *s.MeetingLink)
	assert.Equal(t, time.UTC, s.ScheduledAt.Location())
}

func TestCreateSessionKeepsSuppliedLinkAndToleratesProvisionFailure(t *testing.T) {
	f, swap := acceptedSwap(t)

	in := sessionInput(f, swap)
	own := "https://zoom.example/room"
	in.MeetingLink = &own
	s, err := CreateSession(context.Background(), f.db, stubLinks{link: "unused"}, in)
	require.NoError(t, err)
	assert.Equal(t, own, *s.MeetingLink)

	s, err = CreateSession(context.Background(), f.db, stubLinks{err: errors.New("provider down")}, sessionInput(f, swap))
	require.NoError(t, err)
	assert.Nil(t, s.MeetingLink)
}

func TestCreateSessionRequiresAcceptedSwap(t *testing.T) {
	for _, status := range []string{models.SwapPending, models.SwapRejected, models.SwapCompleted} {
		f := newSwapFixture(t)
		swap := testutil.CreateSwap(t, f.db, f.requester, f.provider, f.guitar, f.photo, status)
		_, err := CreateSession(context.Background(), f.db, nil, sessionInput(f, swap))
		assert.ErrorIs(t, err, apperr.ErrPreconditionFailed, status)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	f, swap := acceptedSwap(t)
	ctx := context.Background()

	cases := map[string]func(*CreateSessionInput){
		"zero duration":      func(in *CreateSessionInput) { in.Duration = 0 },
		"empty title":        func(in *CreateSessionInput) { in.Title = "  " },
		"in the past":        func(in *CreateSessionInput) { in.ScheduledAt = time.Now().Add(-time.Hour) },
		"same teacher":       func(in *CreateSessionInput) { in.StudentID = in.TeacherID },
		"outsider student":   func(in *CreateSessionInput) { in.StudentID = uuid.New() },
		"skill not taught":   func(in *CreateSessionInput) { in.SkillID = f.photo.ID },
		"unrelated skill id": func(in *CreateSessionInput) { in.SkillID = f.chess.ID },
	}
	for name, mutate := range cases {
		in := sessionInput(f, swap)
		mutate(&in)
		_, err := CreateSession(ctx, f.db, nil, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, name)
	}

	// roles reversed: the provider teaches photography
	in := sessionInput(f, swap)
	in.TeacherID, in.StudentID, in.SkillID = f.provider.ID, f.requester.ID, f.photo.ID
	_, err := CreateSession(ctx, f.db, nil, in)
	assert.NoError(t, err)

	in = sessionInput(f, swap)
	in.ActorID = uuid.New()
	_, err = CreateSession(ctx, f.db, nil, in)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	in = sessionInput(f, swap)
	in.SwapID = uuid.New()
	_, err = CreateSession(ctx, f.db, nil, in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateSessionStatus(t *testing.T) {
	f, swap := acceptedSwap(t)
	s := testutil.CreateSession(t, f.db, swap, time.Now().Add(time.Hour), models.SessionScheduled)

	got, err := UpdateSessionStatus(f.db, s.ID, f.provider.ID, models.SessionInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.SessionInProgress, got.Status)

	_, err = UpdateSessionStatus(f.db, s.ID, f.provider.ID, models.SessionCancelled)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	got, err = UpdateSessionStatus(f.db, s.ID, f.requester.ID, models.SessionCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, got.Status)

	_, err = UpdateSessionStatus(f.db, s.ID, f.requester.ID, models.SessionScheduled)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = UpdateSessionStatus(f.db, s.ID, uuid.New(), models.SessionCancelled)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = UpdateSessionStatus(f.db, s.ID, f.requester.ID, "joined")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpcomingSessionsOrderedAndCapped(t *testing.T) {
	f, swap := acceptedSwap(t)
	now := time.Now().UTC()

	var want []uuid.UUID
	for _, h := range []int{5, 1, 3, 2, 4, 6} {
		s := testutil.CreateSession(t, f.db, swap, now.Add(time.Duration(h)*time.Hour), models.SessionScheduled)
		if h <= 5 {
			want = append(want, s.ID)
		}
	}
	testutil.CreateSession(t, f.db, swap, now.Add(-time.Hour), models.SessionScheduled)
	testutil.CreateSession(t, f.db, swap, now.Add(30*time.Minute), models.SessionCancelled)

	got, err := UpcomingSessions(f.db, f.provider.ID, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].ScheduledAt.Before(got[i].ScheduledAt))
	}
	ids := make([]uuid.UUID, 0, len(got))
	for _, v := range got {
		ids = append(ids, v.ID)
		assert.False(t, v.IsTeacher)
		assert.Equal(t, f.requester.ID, v.Partner.ID)
		assert.Equal(t, "Guitar", v.Skill.Name)
	}
	assert.ElementsMatch(t, want, ids)
}

func TestSessionsForUserNewestFirst(t *testing.T) {
	f, swap := acceptedSwap(t)
	now := time.Now().UTC()
	early := testutil.CreateSession(t, f.db, swap, now.Add(time.Hour), models.SessionScheduled)
	late := testutil.CreateSession(t, f.db, swap, now.Add(48*time.Hour), models.SessionScheduled)

	got, err := SessionsForUser(f.db, f.requester.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, late.ID, got[0].ID)
	assert.Equal(t, early.ID, got[1].ID)
	assert.True(t, got[0].IsTeacher)
	assert.Equal(t, f.provider.ID, got[0].Partner.ID)
}

func TestCancelStaleSessions(t *testing.T) {
	f, swap := acceptedSwap(t)
	now := time.Now().UTC()

	stale := testutil.CreateSession(t, f.db, swap, now.Add(-48*time.Hour), models.SessionScheduled)
	recent := testutil.CreateSession(t, f.db, swap, now.Add(-2*time.Hour), models.SessionScheduled)
	done := testutil.CreateSession(t, f.db, swap, now.Add(-72*time.Hour), models.SessionCompleted)

	n, err := CancelStaleSessions(f.db, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	statusOf := func(id uuid.UUID) string {
		var s models.Session
		require.NoError(t, f.db.First(&s, "id = ?", id).Error)
		return s.Status
	}
	assert.Equal(t, models.SessionCancelled, statusOf(stale.ID))
	assert.Equal(t, models.SessionScheduled, statusOf(recent.ID))
	assert.Equal(t, models.SessionCompleted, statusOf(done.ID))
}

func TestSessionsStartingBetween(t *testing.T) {
	f, swap := acceptedSwap(t)
	now := time.Now().UTC()
	in := testutil.CreateSession(t, f.db, swap, now.Add(62*time.Minute), models.SessionScheduled)
	testutil.CreateSession(t, f.db, swap, now.Add(90*time.Minute), models.SessionScheduled)
	testutil.CreateSession(t, f.db, swap, now.Add(61*time.Minute), models.SessionCancelled)

	got, err := SessionsStartingBetween(f.db, now.Add(60*time.Minute), now.Add(65*time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, in.ID, got[0].ID)
	assert.NotEmpty(t, got[0].Teacher.Email)
}
