package forumController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/forum"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func loadCategory(db *gorm.DB, id uint) (*models.ForumCategory, error) {
	var category models.ForumCategory
	if err := db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreatePost creates a post in a category, gated by the category's create tier.
func CreatePost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreatePost").(*validator.CreatePostRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	category, err := loadCategory(db, reqData.CategoryID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}
	if !category.CanCreate(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to post in this category!", nil)
	}

	post := models.ForumPost{
		CategoryID: category.ID,
		AuthorID:   user.ID,
		Title:      reqData.Title,
		Content:    reqData.Content,
	}
	if err := db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post created successfully!", post)
}

// ListPosts lists a category's posts, pinned first then newest.
func ListPosts(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	categoryID, err := c.ParamsInt("id")
	if err != nil || categoryID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	category, err := loadCategory(db, uint(categoryID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}
	if !category.CanView(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to view this category!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := db.Model(&models.ForumPost{}).Where("category_id = ?", category.ID)

	var total int64
	query.Count(&total)

	var posts []models.ForumPost
	if err := query.Order("pinned DESC, created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", fiber.Map{
		"posts": posts,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetPost returns a post with its replies in conversation order.
func GetPost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid post id!", nil)
	}

	db := database.Database.Db

	var post models.ForumPost
	if err := db.
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&post, postID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Post not found!", nil)
	}

	category, err := loadCategory(db, post.CategoryID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}
	if !category.CanView(user.Role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to view this post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post fetched successfully!", post)
}

// UpdatePost edits a post. The author may edit their own post unless it is
// locked; moderators may edit any post.
func UpdatePost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdatePost").(*validator.UpdatePostRequest)
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

	isModerator := models.RoleLevel(user.Role) >= models.RoleLevel(models.RoleModerator)
	if post.AuthorID != user.ID && !isModerator {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to edit this post!", nil)
	}
	if post.Locked && !isModerator {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Post is locked!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Content != nil {
		updates["content"] = *reqData.Content
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db.Model(&post).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}

// DeletePost hard-deletes a post and its replies. Author or moderator only.
func DeletePost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
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

	isModerator := models.RoleLevel(user.Role) >= models.RoleLevel(models.RoleModerator)
	if post.AuthorID != user.ID && !isModerator {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this post!", nil)
	}

	if err := db.Unscoped().Where("post_id = ?", post.ID).Delete(&models.ForumReply{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}
	if err := db.Unscoped().Delete(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}

	if isModerator && post.AuthorID != user.ID {
		utils.WriteAudit(user.ID, "forum.post.delete", "forum_post", post.ID, map[string]interface{}{"title": post.Title})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}
