package ticketController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/ticket"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminListTickets lists all tickets with optional filters.
func AdminListTickets(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedListTickets").(*validator.ListTicketsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Ticket{})
	if reqData.Status != nil {
		db = db.Where("status = ?", *reqData.Status)
	}
	if reqData.Priority != nil {
		db = db.Where("priority = ?", *reqData.Priority)
	}
	if reqData.Category != nil {
		db = db.Where("category = ?", *reqData.Category)
	}

	var total int64
	db.Count(&total)

	var tickets []models.Ticket
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
		"tickets": tickets,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// AdminGetTicket returns any ticket with its conversation.
func AdminGetTicket(c *fiber.Ctx) error {
	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&ticket, ticketID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", ticket)
}

// AdminReply appends a staff message. The closed/resolved guard applies to
// staff replies too: reopen first, then reply.
func AdminReply(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAddMessage").(*validator.AddMessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	db := database.Database.Db

	var ticket models.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	if !ticket.AcceptsMessages() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ticket is "+ticket.Status+" and cannot accept new messages!", nil)
	}

	message := models.TicketMessage{
		TicketID:     ticket.ID,
		AuthorID:     &staff.ID,
		Message:      reqData.Message,
		IsStaffReply: true,
	}
	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add reply!", nil)
	}

	if ticket.IsGuest() {
		utils.SendGuestReplyNotification(ticket.GuestEmail, ticket.GuestName, ticket.Subject, ticket.AccessToken)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reply added successfully!", message)
}

// AdminUpdateStatus applies an explicit status transition. Any status can be
// set from any status; closing stamps ClosedAt, reopening clears it.
func AdminUpdateStatus(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateStatus").(*validator.UpdateStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	db := database.Database.Db

	var ticket models.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	updates := map[string]interface{}{"status": reqData.Status}
	switch reqData.Status {
	case models.TicketClosed:
		now := time.Now()
		updates["closed_at"] = &now
	case models.TicketOpen:
		updates["closed_at"] = nil
	}

	// Updates writes the map values back into the struct, so capture the
	// outgoing status first.
	previous := ticket.Status
	if err := db.Model(&ticket).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}

	utils.WriteAudit(staff.ID, "ticket.status", "ticket", ticket.ID, map[string]interface{}{
		"from": previous,
		"to":   reqData.Status,
	})

	ticket.Status = reqData.Status
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated successfully!", ticket)
}

// AdminUpdatePriority sets the priority. Priority carries no transition rules.
func AdminUpdatePriority(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUpdatePriority").(*validator.UpdatePriorityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	db := database.Database.Db

	var ticket models.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	if err := db.Model(&ticket).Update("priority", reqData.Priority).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update priority!", nil)
	}

	utils.WriteAudit(staff.ID, "ticket.priority", "ticket", ticket.ID, map[string]interface{}{
		"priority": reqData.Priority,
	})

	ticket.Priority = reqData.Priority
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Priority updated successfully!", ticket)
}

// AdminDeleteTicket hard-deletes a ticket and its messages.
func AdminDeleteTicket(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	db := database.Database.Db

	var ticket models.Ticket
	if err := db.First(&ticket, ticketID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	if err := db.Unscoped().Where("ticket_id = ?", ticket.ID).Delete(&models.TicketMessage{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete ticket!", nil)
	}
	if err := db.Unscoped().Delete(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete ticket!", nil)
	}

	utils.WriteAudit(staff.ID, "ticket.delete", "ticket", ticket.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket deleted successfully!", nil)
}

// AdminTicketStats returns ticket counts by status and priority.
func AdminTicketStats(c *fiber.Ctx) error {
	db := database.Database.Db

	type statusCount struct {
		Status string
		Count  int64
	}
	type priorityCount struct {
		Priority string
		Count    int64
	}

	var byStatus []statusCount
	db.Model(&models.Ticket{}).Select("status, count(*) as count").Group("status").Scan(&byStatus)

	var byPriority []priorityCount
	db.Model(&models.Ticket{}).Select("priority, count(*) as count").Group("priority").Scan(&byPriority)

	var total int64
	db.Model(&models.Ticket{}).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total":      total,
		"byStatus":   byStatus,
		"byPriority": byPriority,
	})
}
