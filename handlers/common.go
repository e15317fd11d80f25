package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/anjiri1684/skill_swap/apperr"
	"github.com/anjiri1684/skill_swap/database"
	"github.com/anjiri1684/skill_swap/logger"
	"github.com/anjiri1684/skill_swap/services"
	"github.com/anjiri1684/skill_swap/websocket"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var validate = newValidator()

// Realtime and Meetings are wired by main. Both may stay nil.
var (
	Realtime *websocket.Hub
	Meetings services.LinkProvisioner
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorHandler renders every error returned by a handler as
// {"status":"error","kind","code","message"}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"status":  "error",
			"kind":    kindForStatus(fe.Code),
			"code":    fe.Code,
			"message": fe.Message,
		})
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}
	code := apperr.HTTPStatus(ae.Kind)
	if ae.Kind == apperr.KindInternal {
		logger.L().Error("request failed", "method", c.Method(), "path", c.Path(), "error", ae.Err)
	}

	body := fiber.Map{
		"status":  "error",
		"kind":    ae.Kind,
		"code":    code,
		"message": ae.Error(),
	}
	if len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	return c.Status(code).JSON(body)
}

func kindForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return string(apperr.KindValidation)
	case fiber.StatusNotFound:
		return string(apperr.KindNotFound)
	case fiber.StatusUnauthorized:
		return "unauthenticated"
	case fiber.StatusForbidden:
		return string(apperr.KindForbidden)
	case fiber.StatusConflict:
		return string(apperr.KindConflict)
	}
	if code >= 500 {
		return string(apperr.KindInternal)
	}
	return "error"
}

// parseBody decodes and validates the JSON body into req.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperr.Validation("cannot parse JSON body")
	}
	return validateStruct(req)
}

func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("%s", err.Error())
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = validationMessage(fe)
	}
	return apperr.ValidationFields("request validation failed", details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.ValidationFields("invalid path parameter", map[string]string{name: "must be a valid id"})
	}
	return id, nil
}

func db(c *fiber.Ctx) *gorm.DB {
	return database.DB.WithContext(c.UserContext())
}

func publisher() services.Publisher {
	if Realtime == nil {
		return nil
	}
	return Realtime
}

func publish(recipients []uuid.UUID, ev websocket.Event) {
	if Realtime != nil {
		Realtime.Publish(recipients, ev)
	}
}

func paging(c *fiber.Ctx) services.Paging {
	return services.Paging{Page: c.QueryInt("page", 1), PageSize: c.QueryInt("page_size", 0)}
}
