package ticketValidators

import (
	"hub/middleware"
	"hub/models"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type CreateTicketRequest struct {
	Subject  string  `json:"subject"`
	Category *string `json:"category"`
	Priority *string `json:"priority"`
	Message  string  `json:"message"`

	// Guest path only; ignored on the authenticated route.
	GuestEmail string `json:"guestEmail"`
	GuestName  string `json:"guestName"`
}

type AddMessageRequest struct {
	Message string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

type ResendAccessRequest struct {
	Email string `json:"email"`
}

type ListTicketsRequest struct {
	Page     *int    `query:"page"`
	Limit    *int    `query:"limit"`
	Status   *string `query:"status"`
	Priority *string `query:"priority"`
	Category *string `query:"category"`
}

func validateSubjectAndMessage(reqData *CreateTicketRequest, errors map[string]string) {
	reqData.Subject = strings.TrimSpace(reqData.Subject)
	if reqData.Subject == "" {
		errors["subject"] = "Subject is required!"
	} else {
		if len(reqData.Subject) < 3 {
			errors["subject"] = "Subject must be at least 3 characters long!"
		}
		if len(reqData.Subject) > 200 {
			errors["subject"] = "Subject must not exceed 200 characters!"
		}
	}

	reqData.Message = strings.TrimSpace(reqData.Message)
	if reqData.Message == "" {
		errors["message"] = "Message is required!"
	}

	if reqData.Priority != nil && !models.ValidTicketPriority(*reqData.Priority) {
		errors["priority"] = "Invalid priority! Allowed: low, normal, high, urgent"
	}
	if reqData.Category != nil && strings.TrimSpace(*reqData.Category) == "" {
		errors["category"] = "Category must not be empty!"
	}
}

func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validateSubjectAndMessage(reqData, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTicket", reqData)
		return c.Next()
	}
}

// CreateGuestTicket additionally requires a deliverable guest email, since the
// access token is mailed there.
func CreateGuestTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		validateSubjectAndMessage(reqData, errors)

		reqData.GuestEmail = strings.TrimSpace(strings.ToLower(reqData.GuestEmail))
		if reqData.GuestEmail == "" {
			errors["guestEmail"] = "Email is required!"
		} else if !emailRegex.MatchString(reqData.GuestEmail) {
			errors["guestEmail"] = "Invalid email address!"
		}

		reqData.GuestName = strings.TrimSpace(reqData.GuestName)
		if reqData.GuestName == "" {
			errors["guestName"] = "Name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTicket", reqData)
		return c.Next()
	}
}

func AddMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddMessageRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Message = strings.TrimSpace(reqData.Message)
		if reqData.Message == "" {
			errors["message"] = "Message is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddMessage", reqData)
		return c.Next()
	}
}

func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateStatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.ValidTicketStatus(reqData.Status) {
			errors["status"] = "Invalid status! Allowed: open, in_progress, waiting, resolved, closed"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateStatus", reqData)
		return c.Next()
	}
}

func UpdatePriority() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePriorityRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.ValidTicketPriority(reqData.Priority) {
			errors["priority"] = "Invalid priority! Allowed: low, normal, high, urgent"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdatePriority", reqData)
		return c.Next()
	}
}

func ResendAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ResendAccessRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Email = strings.TrimSpace(strings.ToLower(reqData.Email))
		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Invalid email address!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResendAccess", reqData)
		return c.Next()
	}
}

func ListTickets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListTicketsRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Status != nil && !models.ValidTicketStatus(*reqData.Status) {
			errors["status"] = "Invalid status! Allowed: open, in_progress, waiting, resolved, closed"
		}
		if reqData.Priority != nil && !models.ValidTicketPriority(*reqData.Priority) {
			errors["priority"] = "Invalid priority! Allowed: low, normal, high, urgent"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedListTickets", reqData)
		return c.Next()
	}
}
