package forumRoutes

import (
	controller "hub/controllers/forum"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/forum"

	"github.com/gofiber/fiber/v2"
)

func SetupForumRoutes(app *fiber.App) {
	forum := app.Group("/api/forum", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser))

	forum.Get("/categories", controller.ListCategories)
	forum.Get("/categories/:id/posts", controller.ListPosts)
	forum.Post("/posts", validator.CreatePost(), controller.CreatePost)
	forum.Get("/posts/:id", controller.GetPost)
	forum.Put("/posts/:id", validator.UpdatePost(), controller.UpdatePost)
	forum.Delete("/posts/:id", controller.DeletePost)
	forum.Post("/posts/:id/replies", validator.CreateReply(), controller.CreateReply)
	forum.Delete("/replies/:id", controller.DeleteReply)

	admin := app.Group("/api/admin/forum", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	admin.Post("/categories", validator.Category(), controller.CreateCategory)
	admin.Put("/categories/reorder", validator.Reorder(), controller.ReorderCategories)
	admin.Put("/categories/:id", validator.Category(), controller.UpdateCategory)
	admin.Delete("/categories/:id", controller.DeleteCategory)
}
