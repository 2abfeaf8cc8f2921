package donationController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/donation"

	"github.com/gofiber/fiber/v2"
)

// ListRanks returns all donor ranks in display order. Public endpoint.
func ListRanks(c *fiber.Ctx) error {
	var ranks []models.DonorRank
	if err := database.Database.Db.Order("order_index ASC, min_amount ASC").Find(&ranks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ranks!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ranks fetched successfully!", ranks)
}

// CreateRank adds a donor rank.
func CreateRank(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRank").(*validator.RankRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	rank := models.DonorRank{
		Name:             reqData.Name,
		MinAmount:        reqData.MinAmount,
		DurationDays:     reqData.DurationDays,
		BillingProductID: reqData.BillingProductID,
		BillingPriceID:   reqData.BillingPriceID,
	}
	if reqData.Color != nil {
		rank.Color = *reqData.Color
	}
	if reqData.Icon != nil {
		rank.Icon = *reqData.Icon
	}
	if reqData.OrderIndex != nil {
		rank.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Create(&rank).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create rank!", nil)
	}

	utils.WriteAudit(staff.ID, "rank.create", "donor_rank", rank.ID, map[string]interface{}{"name": rank.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rank created successfully!", rank)
}

// UpdateRank edits a donor rank. Existing grant windows are untouched.
func UpdateRank(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRank").(*validator.RankRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	rankID, err := c.ParamsInt("id")
	if err != nil || rankID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid rank id!", nil)
	}

	db := database.Database.Db

	var rank models.DonorRank
	if err := db.First(&rank, rankID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Rank not found!", nil)
	}

	updates := map[string]interface{}{
		"name":               reqData.Name,
		"min_amount":         reqData.MinAmount,
		"duration_days":      reqData.DurationDays,
		"billing_product_id": reqData.BillingProductID,
		"billing_price_id":   reqData.BillingPriceID,
	}
	if reqData.Color != nil {
		updates["color"] = *reqData.Color
	}
	if reqData.Icon != nil {
		updates["icon"] = *reqData.Icon
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}

	if err := db.Model(&rank).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update rank!", nil)
	}

	utils.WriteAudit(staff.ID, "rank.update", "donor_rank", rank.ID, map[string]interface{}{"name": reqData.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rank updated successfully!", rank)
}

// DeleteRank removes a rank definition.
func DeleteRank(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	rankID, err := c.ParamsInt("id")
	if err != nil || rankID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid rank id!", nil)
	}

	db := database.Database.Db

	var rank models.DonorRank
	if err := db.First(&rank, rankID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Rank not found!", nil)
	}

	if err := db.Unscoped().Delete(&rank).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete rank!", nil)
	}

	utils.WriteAudit(staff.ID, "rank.delete", "donor_rank", rank.ID, map[string]interface{}{"name": rank.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rank deleted successfully!", nil)
}

// RevokeUserRank explicitly removes a user's active rank window. This is the
// admin action that pairs with a refund; refunds alone never revoke.
func RevokeUserRank(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"donation_rank_id": nil,
		"rank_expires_at":  nil,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke rank!", nil)
	}

	utils.WriteAudit(staff.ID, "rank.revoke", "user", user.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Rank revoked successfully!", nil)
}
