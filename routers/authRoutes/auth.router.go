package authRoutes

import (
	controller "hub/controllers/auth"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/signup", validator.Signup(), controller.Signup)
	auth.Post("/login", validator.Login(), controller.Login)
	auth.Get("/profile", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser), controller.Profile)
	auth.Put("/profile", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser), validator.UpdateProfile(), controller.UpdateProfile)
}
