package moderationValidators

import (
	"hub/middleware"
	"hub/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type BanRequest struct {
	Reason string `json:"reason"`
}

type CreateReportRequest struct {
	ResourceType string `json:"resourceType"`
	ResourceID   uint   `json:"resourceId"`
	Reason       string `json:"reason"`
}

type TriageReportRequest struct {
	Outcome string `json:"outcome"`
}

func Ban() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BanRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Reason is required!"})
		}

		c.Locals("validatedBan", reqData)
		return c.Next()
	}
}

func CreateReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateReportRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		validResource := map[string]bool{"forum_post": true, "forum_reply": true, "user": true}
		if !validResource[reqData.ResourceType] {
			errors["resourceType"] = "Invalid resource type! Allowed: forum_post, forum_reply, user"
		}
		if reqData.ResourceID == 0 {
			errors["resourceId"] = "Resource ID is required!"
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			errors["reason"] = "Reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateReport", reqData)
		return c.Next()
	}
}

func TriageReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TriageReportRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidReportOutcome(reqData.Outcome) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"outcome": "Invalid outcome! Allowed: reviewed, dismissed, actioned",
			})
		}

		c.Locals("validatedTriageReport", reqData)
		return c.Next()
	}
}
