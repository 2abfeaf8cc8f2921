package moderationController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/moderation"

	"github.com/gofiber/fiber/v2"
)

// BanUser sets the target's role to banned and records the action. Re-banning
// an already banned user changes nothing beyond the extra audit entry.
func BanUser(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBan").(*validator.BanRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var target models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if models.RoleLevel(target.Role) >= models.RoleLevel(staff.Role) && target.Role != models.RoleBanned {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot ban a user of equal or higher role!", nil)
	}

	previousRole := target.Role
	if target.Role != models.RoleBanned {
		if err := db.Model(&target).Update("role", models.RoleBanned).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to ban user!", nil)
		}
	}

	utils.WriteAudit(staff.ID, "user.ban", "user", target.ID, map[string]interface{}{
		"reason":       reqData.Reason,
		"previousRole": previousRole,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User banned successfully!", nil)
}

// UnbanUser restores a banned user to the base tier.
func UnbanUser(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var target models.User
	if err := db.Where("id = ? AND is_deleted = false", userID).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if target.Role == models.RoleBanned {
		if err := db.Model(&target).Update("role", models.RoleUser).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unban user!", nil)
		}
	}

	utils.WriteAudit(staff.ID, "user.unban", "user", target.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User unbanned successfully!", nil)
}

// LockPost stops new replies on a post. Mirrors the ticket-closed guard.
func LockPost(c *fiber.Ctx) error {
	return setPostLock(c, true, "post.lock", "Post locked successfully!")
}

// UnlockPost re-allows replies.
func UnlockPost(c *fiber.Ctx) error {
	return setPostLock(c, false, "post.unlock", "Post unlocked successfully!")
}

func setPostLock(c *fiber.Ctx, locked bool, action, okMessage string) error {
	staff, ok := middleware.CurrentUser(c)
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

	if err := db.Model(&post).Update("locked", locked).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	utils.WriteAudit(staff.ID, action, "forum_post", post.ID, map[string]interface{}{"title": post.Title})

	return middleware.JsonResponse(c, fiber.StatusOK, true, okMessage, nil)
}

// PinPost toggles pinned status, which floats the post to the top of its
// category listing.
func PinPost(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
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

	// Update writes the new value back into post.Pinned, so decide everything
	// from the pre-update state first.
	newPinned := !post.Pinned
	if err := db.Model(&post).Update("pinned", newPinned).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	action := "post.pin"
	if !newPinned {
		action = "post.unpin"
	}
	utils.WriteAudit(staff.ID, action, "forum_post", post.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post pin state updated!", fiber.Map{"pinned": newPinned})
}

// CreateReport files a report against a resource.
func CreateReport(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateReport").(*validator.CreateReportRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	report := models.Report{
		ReporterID:   user.ID,
		ResourceType: reqData.ResourceType,
		ResourceID:   reqData.ResourceID,
		Reason:       reqData.Reason,
	}
	if err := database.Database.Db.Create(&report).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create report!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report submitted successfully!", report)
}

// ListReports lists reports for triage, pending first.
func ListReports(c *fiber.Ctx) error {
	db := database.Database.Db.Model(&models.Report{})
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var reports []models.Report
	if err := db.Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC").Find(&reports).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reports!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reports fetched successfully!", reports)
}

// TriageReport resolves a pending report. Triaged reports are terminal.
func TriageReport(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTriageReport").(*validator.TriageReportRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	reportID, err := c.ParamsInt("id")
	if err != nil || reportID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid report id!", nil)
	}

	db := database.Database.Db

	var report models.Report
	if err := db.First(&report, reportID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Report not found!", nil)
	}

	if report.IsTerminal() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Report has already been triaged!", nil)
	}

	if err := db.Model(&report).Updates(map[string]interface{}{
		"status":     reqData.Outcome,
		"handled_by": staff.ID,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to triage report!", nil)
	}

	utils.WriteAudit(staff.ID, "report.triage", "report", report.ID, map[string]interface{}{
		"outcome": reqData.Outcome,
	})

	report.Status = reqData.Outcome
	report.HandledBy = &staff.ID
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report triaged successfully!", report)
}

// ListAuditLog returns audit entries, newest first, with optional filters.
func ListAuditLog(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.AuditLogEntry{})
	if action := c.Query("action"); action != "" {
		db = db.Where("action = ?", action)
	}
	if actor := c.QueryInt("actorId", 0); actor > 0 {
		db = db.Where("actor_id = ?", actor)
	}

	var total int64
	db.Count(&total)

	var entries []models.AuditLogEntry
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit log!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit log fetched successfully!", fiber.Map{
		"entries": entries,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
