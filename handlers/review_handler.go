package handlers

import (
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	SessionID  uuid.UUID `json:"sessionId" validate:"required"`
	RevieweeID uuid.UUID `json:"revieweeId"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Comment    *string   `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

func CreateReview(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	review, err := services.CreateReview(db(c), services.CreateReviewInput{
		SessionID:  req.SessionID,
		ReviewerID: userID,
		RevieweeID: req.RevieweeID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func UpdateReview(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	reviewID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	review, err := services.UpdateReview(db(c), reviewID, userID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(review)
}

func GetUserReviews(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	reviews, err := services.ReviewsForUser(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

func GetUserRating(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	rating, err := services.RatingFor(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"userId": userID, "rating": rating.Average, "count": rating.Count})
}
