package services

import (
	"errors"
	"math"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	SessionID  uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    *string
}

type ReviewView struct {
	models.Review
	Reviewer     PublicUser `json:"reviewer"`
	SessionTitle string     `json:"sessionTitle"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

func validRating(r int) error {
	if r < 1 || r > 5 {
		return apperr.Validation("rating must be an integer between 1 and 5")
	}
	return nil
}

func CreateReview(db *gorm.DB, in CreateReviewInput) (models.Review, error) {
	var review models.Review
	if err := validRating(in.Rating); err != nil {
		return review, err
	}

	var session models.Session
	if err := db.First(&session, "id = ?", in.SessionID).Error; err != nil {
		return review, dbError(err, "session")
	}
	other, ok := OtherParticipant(session.TeacherID, session.StudentID, in.ReviewerID)
	if !ok {
		return review, apperr.Unauthorized("you are not a participant of this session")
	}
	if in.RevieweeID != uuid.Nil && in.RevieweeID != other {
		return review, apperr.Validation("reviewee must be the other participant of the session")
	}
	if session.Status != models.SessionCompleted {
		return review, apperr.PreconditionFailed("only completed sessions can be reviewed, this session is %s", session.Status)
	}

	var existing int64
	if err := db.Model(&models.Review{}).
		Where("session_id = ? AND reviewer_id = ?", session.ID, in.ReviewerID).
		Count(&existing).Error; err != nil {
		return review, apperr.Internal(err)
	}
	if existing > 0 {
		return review, apperr.Conflict("you have already reviewed this session, update the existing review instead")
	}

	now := timeNow()
	review = models.Review{
		SessionID:  session.ID,
		ReviewerID: in.ReviewerID,
		RevieweeID: other,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return review, apperr.Conflict("you have already reviewed this session, update the existing review instead")
		}
		return review, apperr.Internal(err)
	}
	return review, nil
}

// UpdateReview changes rating and/or comment. Only the reviewer may edit.
func UpdateReview(db *gorm.DB, reviewID, reviewerID uuid.UUID, rating *int, comment *string) (models.Review, error) {
	var review models.Review
	if err := db.First(&review, "id = ?", reviewID).Error; err != nil {
		return review, dbError(err, "review")
	}
	if review.ReviewerID != reviewerID {
		return review, apperr.Unauthorized("only the reviewer can edit this review")
	}
	if rating != nil {
		if err := validRating(*rating); err != nil {
			return review, err
		}
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = comment
	}
	review.UpdatedAt = timeNow()
	if err := db.Save(&review).Error; err != nil {
		return review, apperr.Internal(err)
	}
	return review, nil
}

// ReviewsForUser lists reviews received by userID, newest first.
func ReviewsForUser(db *gorm.DB, userID uuid.UUID) ([]ReviewView, error) {
	var reviews []models.Review
	err := db.Preload("Reviewer").Preload("Session").
		Where("reviewee_id = ?", userID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, ReviewView{
			Review:       r,
			Reviewer:     PublicView(r.Reviewer),
			SessionTitle: r.Session.Title,
		})
	}
	return views, nil
}

// RatingFor is the mean rating received, rounded to one decimal, 0 without reviews.
func RatingFor(db *gorm.DB, userID uuid.UUID) (Rating, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("reviewee_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return Rating{}, apperr.Internal(err)
	}
	return Rating{Average: math.Round(row.Average*10) / 10, Count: row.Count}, nil
}
