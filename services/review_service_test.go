package services

import (
	"testing"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingForAverages(t *testing.T) {
	f, swap := acceptedSwap(t)

	rating, err := RatingFor(f.db, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rating.Average)
	assert.EqualValues(t, 0, rating.Count)

	for _, r := range []int{5, 4, 3} {
		s := testutil.CreateSession(t, f.db, swap, time.Now().Add(-time.Hour), models.SessionCompleted)
		_, err := CreateReview(f.db, CreateReviewInput{
			SessionID:  s.ID,
			ReviewerID: f.requester.ID,
			RevieweeID: f.provider.ID,
			Rating:     r,
		})
		require.NoError(t, err)
	}

	rating, err = RatingFor(f.db, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, rating.Average)
	assert.EqualValues(t, 3, rating.Count)
}

func TestRatingForRoundsToOneDecimal(t *testing.T) {
	f, swap := acceptedSwap(t)
	for _, r := range []int{5, 4, 4} {
		s := testutil.CreateSession(t, f.db, swap, time.Now().Add(-time.Hour), models.SessionCompleted)
		_, err := CreateReview(f.db, CreateReviewInput{SessionID: s.ID, ReviewerID: f.provider.ID, Rating: r})
		require.NoError(t, err)
	}
	rating, err := RatingFor(f.db, f.requester.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, rating.Average)
}

func TestCreateReviewRules(t *testing.T) {
	f, swap := acceptedSwap(t)
	completed := testutil.CreateSession(t, f.db, swap, time.Now().Add(-time.Hour), models.SessionCompleted)
	scheduled := testutil.CreateSession(t, f.db, swap, time.Now().Add(time.Hour), models.SessionScheduled)

	base := CreateReviewInput{SessionID: completed.ID, ReviewerID: f.requester.ID, RevieweeID: f.provider.ID, Rating: 5}

	for _, bad := range []int{0, 6, -1} {
		in := base
		in.Rating = bad
		_, err := CreateReview(f.db, in)
		assert.ErrorIs(t, err, apperr.ErrValidation, "rating %d", bad)
	}

	in := base
	in.RevieweeID = f.requester.ID
	_, err := CreateReview(f.db, in)
	assert.ErrorIs(t, err, apperr.ErrValidation, "cannot review yourself")

	in = base
	in.ReviewerID = uuid.New()
	_, err = CreateReview(f.db, in)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	in = base
	in.SessionID = scheduled.ID
	_, err = CreateReview(f.db, in)
	assert.ErrorIs(t, err, apperr.ErrPreconditionFailed)

	in = base
	in.SessionID = uuid.New()
	_, err = CreateReview(f.db, in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	review, err := CreateReview(f.db, base)
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, review.RevieweeID)

	_, err = CreateReview(f.db, base)
	assert.ErrorIs(t, err, apperr.ErrConflict, "one review per session and reviewer")

	// the other participant can still review the same session
	_, err = CreateReview(f.db, CreateReviewInput{SessionID: completed.ID, ReviewerID: f.provider.ID, Rating: 4})
	require.NoError(t, err)
}

func TestUpdateReview(t *testing.T) {
	f, swap := acceptedSwap(t)
	s := testutil.CreateSession(t, f.db, swap, time.Now().Add(-time.Hour), models.SessionCompleted)
	review, err := CreateReview(f.db, CreateReviewInput{SessionID: s.ID, ReviewerID: f.requester.ID, Rating: 2})
	require.NoError(t, err)

	five := 5
	comment := "much better the second time"
	updated, err := UpdateReview(f.db, review.ID, f.requester.ID, &five, &comment)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, comment, *updated.Comment)

	_, err = UpdateReview(f.db, review.ID, f.provider.ID, &five, nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	nine := 9
	_, err = UpdateReview(f.db, review.ID, f.requester.ID, &nine, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	rating, err := RatingFor(f.db, f.provider.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rating.Average)

	views, err := ReviewsForUser(f.db, f.provider.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, f.requester.ID, views[0].Reviewer.ID)
	assert.Equal(t, "Session", views[0].SessionTitle)
}

func TestStatsFor(t *testing.T) {
	f := newSwapFixture(t)
	other := testutil.CreateUser(t, f.db, "Carol")

	accepted := testutil.CreateSwap(t, f.db, f.requester, f.provider, f.guitar, f.photo, models.SwapAccepted)
	testutil.CreateSwap(t, f.db, f.requester, f.provider, f.guitar, f.photo, models.SwapCompleted)
	testutil.CreateSwap(t, f.db, other, f.provider, f.chess, f.photo, models.SwapPending)
	testutil.CreateSwap(t, f.db, f.provider, other, f.photo, f.chess, models.SwapPending)

	s := testutil.CreateSession(t, f.db, accepted, time.Now().Add(-time.Hour), models.SessionCompleted)
	testutil.CreateSession(t, f.db, accepted, time.Now().Add(time.Hour), models.SessionScheduled)
	_, err := CreateReview(f.db, CreateReviewInput{SessionID: s.ID, ReviewerID: f.requester.ID, Rating: 4})
	require.NoError(t, err)

	st, err := StatsFor(f.db, f.provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, st.ActiveSwaps)
	assert.EqualValues(t, 1, st.CompletedSwaps)
	assert.EqualValues(t, 1, st.PendingRequests, "only incoming requests count")
	assert.EqualValues(t, 2, st.TotalSessions)
	assert.Equal(t, 4.0, st.AverageRating)
	assert.EqualValues(t, 1, st.ReviewCount)
}
