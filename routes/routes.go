package routes

import "github.com/gofiber/fiber/v2"

const apiPrefix = "/api/v1"

// Setup registers every route group on app. Public routes go first so the
// protected groups sharing their prefixes do not shadow them.
func Setup(app *fiber.App) {
	PublicRoutes(app)
	AuthRoutes(app)
	ProfileRoutes(app)
	SkillRoutes(app)
	SwapRoutes(app)
	SessionRoutes(app)
	MessagingRoutes(app)
	ReviewRoutes(app)
	UploadRoutes(app)
	AdminRoutes(app)
}
