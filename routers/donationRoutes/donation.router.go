package donationRoutes

import (
	controller "hub/controllers/donation"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/donation"

	"github.com/gofiber/fiber/v2"
)

func SetupDonationRoutes(app *fiber.App) {
	// Rank catalogue is public so the donation page can render it.
	app.Get("/api/ranks", controller.ListRanks)

	admin := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	admin.Post("/donations", validator.RecordDonation(), controller.RecordDonation)
	admin.Get("/donations", controller.ListDonations)
	admin.Get("/donations/stats", controller.DonationStats)
	admin.Put("/donations/:id/status", validator.UpdateDonationStatus(), controller.UpdateDonationStatus)

	admin.Post("/ranks", validator.Rank(), controller.CreateRank)
	admin.Put("/ranks/:id", validator.Rank(), controller.UpdateRank)
	admin.Delete("/ranks/:id", controller.DeleteRank)
	admin.Post("/users/:id/revoke-rank", controller.RevokeUserRank)
}
