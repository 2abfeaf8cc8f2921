package ticketRoutes

import (
	controller "hub/controllers/ticket"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/ticket"

	"github.com/gofiber/fiber/v2"
)

func SetupTicketRoutes(app *fiber.App) {
	tickets := app.Group("/api/tickets")

	// Guest path: possession token only, no session.
	tickets.Post("/guest", validator.CreateGuestTicket(), controller.CreateGuestTicket)
	tickets.Get("/guest", controller.GetGuestTicket)
	tickets.Post("/guest/messages", validator.AddMessage(), controller.AddGuestMessage)
	tickets.Post("/guest/resend-access", validator.ResendAccess(), controller.ResendGuestAccess)

	// Authenticated owners.
	authed := tickets.Group("", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser))
	authed.Post("/", validator.CreateTicket(), controller.CreateTicket)
	authed.Get("/", validator.ListTickets(), controller.ListTickets)
	authed.Get("/:id", controller.GetTicket)
	authed.Post("/:id/messages", validator.AddMessage(), controller.AddMessage)

	// Staff.
	admin := app.Group("/api/admin/tickets", middleware.JWTMiddleware, middleware.RequireRole(models.RoleModerator))
	admin.Get("/", validator.ListTickets(), controller.AdminListTickets)
	admin.Get("/stats", controller.AdminTicketStats)
	admin.Get("/:id", controller.AdminGetTicket)
	admin.Post("/:id/messages", validator.AddMessage(), controller.AdminReply)
	admin.Put("/:id/status", validator.UpdateStatus(), controller.AdminUpdateStatus)
	admin.Put("/:id/priority", validator.UpdatePriority(), controller.AdminUpdatePriority)
	admin.Delete("/:id", middleware.RequireRole(models.RoleAdmin), controller.AdminDeleteTicket)
}
