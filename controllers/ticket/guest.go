package ticketController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/ticket"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateGuestTicket opens a ticket without an account. The ticket is
// addressable only through the access token mailed to the submitter.
func CreateGuestTicket(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateTicket").(*validator.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket := models.Ticket{
		Subject:     reqData.Subject,
		GuestEmail:  reqData.GuestEmail,
		GuestName:   reqData.GuestName,
		AccessToken: utils.GenerateAccessToken(),
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
		TicketID:  ticket.ID,
		GuestName: reqData.GuestName,
		Message:   reqData.Message,
	}
	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	utils.SendGuestTicketEmail(ticket.GuestEmail, ticket.GuestName, ticket.Subject, ticket.AccessToken)

	// The token goes out by email only, never in the response body.
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket created! Check your email for the access link.", fiber.Map{
		"id":      ticket.ID,
		"subject": ticket.Subject,
		"status":  ticket.Status,
	})
}

func findGuestTicket(c *fiber.Ctx) (*models.Ticket, error) {
	token := c.Query("token")
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}

	var ticket models.Ticket
	err := database.Database.Db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("access_token = ? AND user_id IS NULL", token).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetGuestTicket returns a guest ticket by possession token.
func GetGuestTicket(c *fiber.Ctx) error {
	ticket, err := findGuestTicket(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", ticket)
}

// AddGuestMessage appends a guest reply, subject to the same closed/resolved
// guard as authenticated replies.
func AddGuestMessage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAddMessage").(*validator.AddMessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket, err := findGuestTicket(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	if !ticket.AcceptsMessages() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ticket is "+ticket.Status+" and cannot accept new messages!", nil)
	}

	message := models.TicketMessage{
		TicketID:  ticket.ID,
		GuestName: ticket.GuestName,
		Message:   reqData.Message,
	}
	if err := database.Database.Db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message added successfully!", message)
}

// ResendGuestAccess re-issues access tokens for all guest tickets under an
// email. The response is identical whether or not any tickets exist, so the
// endpoint cannot be used to probe which emails have tickets.
func ResendGuestAccess(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResendAccess").(*validator.ResendAccessRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var tickets []models.Ticket
	if err := db.Where("guest_email = ? AND user_id IS NULL", reqData.Email).Find(&tickets).Error; err == nil {
		for i := range tickets {
			newToken := utils.GenerateAccessToken()
			if err := db.Model(&tickets[i]).Update("access_token", newToken).Error; err != nil {
				continue
			}
			utils.SendGuestTicketEmail(tickets[i].GuestEmail, tickets[i].GuestName, tickets[i].Subject, newToken)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "If any tickets exist for that email, an access link has been sent.", nil)
}
