package donationController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/donation"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// grantRankForDonation applies the rank window to the donation's user and
// notifies them. No-op unless the donation is completed and carries a rank.
func grantRankForDonation(donation *models.Donation) {
	if donation.Status != models.DonationCompleted || donation.RankID == nil || donation.UserID == nil {
		return
	}

	db := database.Database.Db

	var rank models.DonorRank
	if err := db.First(&rank, *donation.RankID).Error; err != nil {
		log.Printf("[RANK] Donation %d references missing rank %d: %v", donation.ID, *donation.RankID, err)
		return
	}

	days := donation.Days
	if days <= 0 {
		days = rank.DurationDays
	}

	var user models.User
	if err := db.First(&user, *donation.UserID).Error; err != nil {
		log.Printf("[RANK] Donation %d references missing user %d: %v", donation.ID, *donation.UserID, err)
		return
	}

	utils.ApplyRankGrant(&user, rank.ID, days, time.Now())
	if err := db.Model(&user).Updates(map[string]interface{}{
		"donation_rank_id": user.DonationRankID,
		"rank_expires_at":  user.RankExpiresAt,
	}).Error; err != nil {
		log.Printf("[RANK] Failed to grant rank %d to user %d for donation %d: %v", rank.ID, user.ID, donation.ID, err)
		return
	}

	utils.SendRankGrantedEmail(user.Email, user.Name, rank.Name, user.RankExpiresAt.Format("January 2, 2006"))
}

// RecordDonation records a payment (webhook-fed or manual admin entry) and
// grants the rank when the payment arrives already completed.
func RecordDonation(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedRecordDonation").(*validator.RecordDonationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	donation := models.Donation{
		UserID:                 reqData.UserID,
		Amount:                 reqData.Amount,
		Method:                 reqData.Method,
		RankID:                 reqData.RankID,
		ReceiptNumber:          utils.GenerateReceiptNumber(),
		ExternalPaymentID:      reqData.ExternalPaymentID,
		ExternalSubscriptionID: reqData.ExternalSubscriptionID,
	}
	if reqData.Currency != nil {
		donation.Currency = *reqData.Currency
	}
	if reqData.PaymentType != nil {
		donation.PaymentType = *reqData.PaymentType
	}
	if reqData.Status != nil {
		donation.Status = *reqData.Status
	}
	if reqData.Days != nil {
		donation.Days = *reqData.Days
	}

	db := database.Database.Db
	if err := db.Create(&donation).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record donation!", nil)
	}

	grantRankForDonation(&donation)

	utils.WriteAudit(staff.ID, "donation.record", "donation", donation.ID, map[string]interface{}{
		"amount":  donation.Amount,
		"status":  donation.Status,
		"receipt": donation.ReceiptNumber,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Donation recorded successfully!", donation)
}

// UpdateDonationStatus transitions a donation's status. Completing a pending
// donation grants the rank. A refund reverses revenue totals only: the rank
// window already granted stays until an admin explicitly revokes it.
func UpdateDonationStatus(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateDonationStatus").(*validator.UpdateDonationStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	donationID, err := c.ParamsInt("id")
	if err != nil || donationID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid donation id!", nil)
	}

	db := database.Database.Db

	var donation models.Donation
	if err := db.First(&donation, donationID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Donation not found!", nil)
	}

	previous := donation.Status
	if err := db.Model(&donation).Update("status", reqData.Status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update donation!", nil)
	}
	donation.Status = reqData.Status

	if previous != models.DonationCompleted && reqData.Status == models.DonationCompleted {
		grantRankForDonation(&donation)
	}

	utils.WriteAudit(staff.ID, "donation.status", "donation", donation.ID, map[string]interface{}{
		"from": previous,
		"to":   reqData.Status,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Donation updated successfully!", donation)
}

// ListDonations lists donations with pagination, newest first.
func ListDonations(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Donation{})
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var donations []models.Donation
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&donations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch donations!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Donations fetched successfully!", fiber.Map{
		"donations": donations,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// DonationStats reports revenue totals. Refunded donations are excluded from
// revenue, which is how a refund "reverses" totals.
func DonationStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalRevenue float64
	db.Model(&models.Donation{}).
		Where("status = ?", models.DonationCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	var refunded float64
	db.Model(&models.Donation{}).
		Where("status = ?", models.DonationRefunded).
		Select("COALESCE(SUM(amount), 0)").Scan(&refunded)

	var count int64
	db.Model(&models.Donation{}).Where("status = ?", models.DonationCompleted).Count(&count)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"totalRevenue":   totalRevenue,
		"refundedAmount": refunded,
		"completedCount": count,
	})
}
