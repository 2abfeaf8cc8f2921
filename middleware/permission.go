package middleware

import (
	"hub/database"
	"hub/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that loads the authenticated user and
// rejects the request unless their role tier is at least minRole. The loaded
// user is stashed in Locals("user") so controllers don't query it again.
// Banned users fail every tier check.
func RequireRole(minRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		if models.RoleLevel(user.Role) < models.RoleLevel(minRole) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

// CurrentUser pulls the user loaded by RequireRole out of Locals.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}

// CronSecretMiddleware gates cron endpoints behind a static shared-secret
// header. An empty configured secret disables the endpoints entirely.
func CronSecretMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" || c.Get("X-Cron-Secret") != secret {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}
		return c.Next()
	}
}
