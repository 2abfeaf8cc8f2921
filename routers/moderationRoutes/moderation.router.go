package moderationRoutes

import (
	controller "hub/controllers/moderation"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/moderation"

	"github.com/gofiber/fiber/v2"
)

func SetupModerationRoutes(app *fiber.App) {
	// Any signed-in user may file a report.
	app.Post("/api/reports", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser),
		validator.CreateReport(), controller.CreateReport)

	mod := app.Group("/api/mod", middleware.JWTMiddleware, middleware.RequireRole(models.RoleModerator))
	mod.Post("/users/:id/ban", validator.Ban(), controller.BanUser)
	mod.Post("/users/:id/unban", controller.UnbanUser)
	mod.Post("/posts/:id/lock", controller.LockPost)
	mod.Post("/posts/:id/unlock", controller.UnlockPost)
	mod.Post("/posts/:id/pin", controller.PinPost)
	mod.Get("/reports", controller.ListReports)
	mod.Put("/reports/:id", validator.TriageReport(), controller.TriageReport)

	admin := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	admin.Get("/audit-log", controller.ListAuditLog)
}
