package forumController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/forum"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns the categories the caller's role tier may view, in
// display order.
func ListCategories(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var categories []models.ForumCategory
	if err := database.Database.Db.Order("order_index ASC, id ASC").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	visible := make([]models.ForumCategory, 0, len(categories))
	for _, cat := range categories {
		if cat.CanView(user.Role) {
			visible = append(visible, cat)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", visible)
}

// CreateCategory adds a forum category.
func CreateCategory(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*validator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	category := models.ForumCategory{
		Name: reqData.Name,
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}
	if reqData.ViewRole != nil {
		category.ViewRole = *reqData.ViewRole
	}
	if reqData.CreateRole != nil {
		category.CreateRole = *reqData.CreateRole
	}
	if reqData.ReplyRole != nil {
		category.ReplyRole = *reqData.ReplyRole
	}
	if reqData.OrderIndex != nil {
		category.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	utils.WriteAudit(staff.ID, "forum.category.create", "forum_category", category.ID, map[string]interface{}{"name": category.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category created successfully!", category)
}

// UpdateCategory edits a forum category.
func UpdateCategory(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*validator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	categoryID, err := c.ParamsInt("id")
	if err != nil || categoryID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	var category models.ForumCategory
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	updates := map[string]interface{}{"name": reqData.Name}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.ViewRole != nil {
		updates["view_role"] = *reqData.ViewRole
	}
	if reqData.CreateRole != nil {
		updates["create_role"] = *reqData.CreateRole
	}
	if reqData.ReplyRole != nil {
		updates["reply_role"] = *reqData.ReplyRole
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}

	if err := db.Model(&category).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	utils.WriteAudit(staff.ID, "forum.category.update", "forum_category", category.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// ReorderCategories persists a new display order. The payload is the full list
// of category ids in their new order; each gets its index as order_index.
func ReorderCategories(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedReorder").(*validator.ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	for index, id := range reqData.Order {
		if err := db.Model(&models.ForumCategory{}).Where("id = ?", id).Update("order_index", index).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder categories!", nil)
		}
	}

	utils.WriteAudit(staff.ID, "forum.category.reorder", "forum_category", 0, map[string]interface{}{"order": reqData.Order})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories reordered successfully!", nil)
}

// DeleteCategory hard-deletes a category and cascades to its posts and replies.
func DeleteCategory(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	categoryID, err := c.ParamsInt("id")
	if err != nil || categoryID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	var category models.ForumCategory
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var postIDs []uint
	db.Model(&models.ForumPost{}).Where("category_id = ?", category.ID).Pluck("id", &postIDs)

	if len(postIDs) > 0 {
		if err := db.Unscoped().Where("post_id IN ?", postIDs).Delete(&models.ForumReply{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
		}
		if err := db.Unscoped().Where("category_id = ?", category.ID).Delete(&models.ForumPost{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
		}
	}
	if err := db.Unscoped().Delete(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	utils.WriteAudit(staff.ID, "forum.category.delete", "forum_category", category.ID, map[string]interface{}{"name": category.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
