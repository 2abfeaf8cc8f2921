package ticketController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/ticket"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTicket opens a ticket for an authenticated user.
func CreateTicket(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateTicket").(*validator.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket := models.Ticket{
		Subject: reqData.Subject,
		UserID:  &user.ID,
	}
	if reqData.Category != nil {
		ticket.Category = *reqData.Category
	}
	if reqData.Priority != nil {
		ticket.Priority = *reqData.Priority
	}

	db := database.Database.Db
	if err := db.Create(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	message := models.TicketMessage{
		TicketID: ticket.ID,
		AuthorID: &user.ID,
		Message:  reqData.Message,
	}
	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket created successfully!", ticket)
}

// ListTickets returns the caller's own tickets, newest first.
func ListTickets(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedListTickets").(*validator.ListTicketsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
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

	db := database.Database.Db.Model(&models.Ticket{}).Where("user_id = ?", user.ID)
	if reqData.Status != nil {
		db = db.Where("status = ?", *reqData.Status)
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
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetTicket returns one of the caller's tickets with its conversation.
func GetTicket(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketID, err := c.ParamsInt("id")
	if err != nil || ticketID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND user_id = ?", ticketID, user.ID).
		First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", ticket)
}

// AddMessage appends a message to one of the caller's tickets. Resolved and
// closed tickets reject new messages until staff reopens them.
func AddMessage(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
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
	if err := db.Where("id = ? AND user_id = ?", ticketID, user.ID).First(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	if !ticket.AcceptsMessages() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ticket is "+ticket.Status+" and cannot accept new messages!", nil)
	}

	message := models.TicketMessage{
		TicketID: ticket.ID,
		AuthorID: &user.ID,
		Message:  reqData.Message,
	}
	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message added successfully!", message)
}
