package forumController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/forum"

	"github.com/gofiber/fiber/v2"
)

// CreateReply appends a reply to a post. Locked posts reject replies, same
// guard shape as closed tickets.
func CreateReply(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateReply").(*validator.CreateReplyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	db := database.Database.Db

	var post models.ForumPost
	if err := db.First(&post, postID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	if post.Locked {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Post is locked and cannot accept new replies!", nil)
	}

	category, err := loadCategory(db, post.CategoryID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}
	if !category.CanReply(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to reply in this category!", nil)
	}

	reply := models.ForumReply{
		PostID:   post.ID,
		AuthorID: user.ID,
		Content:  reqData.Content,
	}
	if err := db.Create(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply created successfully!", reply)
}

// DeleteReply hard-deletes a reply. Author or moderator only.
func DeleteReply(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	replyID, err := c.ParamsInt("id")
	if err != nil || replyID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid reply id!", nil)
	}

	db := database.Database.Db

	var reply models.ForumReply
	if err := db.First(&reply, replyID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Reply not found!", nil)
	}

	isModerator := models.RoleLevel(user.Role) >= models.RoleLevel(models.RoleModerator)
	if reply.AuthorID != user.ID && !isModerator {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this reply!", nil)
	}

	if err := db.Unscoped().Delete(&reply).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete reply!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply deleted successfully!", nil)
}
