package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/anjiri1684/skill_swap/apperr"
	config "github.com/anjiri1684/skill_swap/configs"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/models"
	"github.com/anjiri1684/skill_swap/notifications"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	user := models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  string(hashedPassword),
		Role:      models.UserRoleMember,
		IsActive:  true,
	}
	err = db(c).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflict("email already exists")
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("email already exists")
			}
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	token, err := signToken(user)
	if err != nil {
		return err
	}

	go notifications.SendEmail(user.FirstName, user.Email, "Welcome to SkillSwap!",
		"<h1>Welcome!</h1><p>Add the skills you can teach and the ones you want to learn to start finding swap partners.</p>")

	logger.L().Info("user registered", "user_id", user.ID)
	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	invalid := fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")

	var user models.User
	if err := db(c).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid
		}
		return apperr.Internal(err)
	}
	if !user.IsActive {
		return invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return invalid
	}

	token, err := signToken(user)
	if err != nil {
		return err
	}
	return c.JSON(authResponse{Token: token, User: user})
}

func GetAuthenticatedUser(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := services.GetUser(db(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func signToken(user models.User) (string, error) {
	ttl := time.Duration(config.Int("JWT_TTL_HOURS", 72)) * time.Hour
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	t, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return "", apperr.Internal(err)
	}
	return t, nil
}

// parseToken validates a bearer token outside the HTTP middleware (websocket auth frame).
func parseToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	raw, _ := claims["user_id"].(string)
	return uuid.Parse(raw)
}
