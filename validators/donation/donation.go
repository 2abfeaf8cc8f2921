package donationValidators

import (
	"hub/middleware"
	"hub/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type RecordDonationRequest struct {
	UserID                 *uint   `json:"userId"`
	Amount                 float64 `json:"amount"`
	Currency               *string `json:"currency"`
	Method                 string  `json:"method"`
	PaymentType            *string `json:"paymentType"`
	Status                 *string `json:"status"`
	RankID                 *uint   `json:"rankId"`
	Days                   *int    `json:"days"`
	ExternalPaymentID      string  `json:"externalPaymentId"`
	ExternalSubscriptionID string  `json:"externalSubscriptionId"`
}

type UpdateDonationStatusRequest struct {
	Status string `json:"status"`
}

type RankRequest struct {
	Name             string  `json:"name"`
	MinAmount        float64 `json:"minAmount"`
	Color            *string `json:"color"`
	Icon             *string `json:"icon"`
	DurationDays     int     `json:"durationDays"`
	BillingProductID string  `json:"billingProductId"`
	BillingPriceID   string  `json:"billingPriceId"`
	OrderIndex       *int    `json:"orderIndex"`
}

func RecordDonation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RecordDonationRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}

		reqData.Method = strings.TrimSpace(reqData.Method)
		if reqData.Method == "" {
			errors["method"] = "Payment method is required!"
		}

		if reqData.PaymentType != nil && !models.ValidPaymentType(*reqData.PaymentType) {
			errors["paymentType"] = "Invalid payment type! Allowed: one_time, subscription, subscription_renewal"
		}
		if reqData.Status != nil && !models.ValidDonationStatus(*reqData.Status) {
			errors["status"] = "Invalid status! Allowed: completed, pending, failed, refunded"
		}

		// A rank grant needs a positive duration, either explicit or from the rank.
		if reqData.Days != nil && *reqData.Days < 0 {
			errors["days"] = "Days must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRecordDonation", reqData)
		return c.Next()
	}
}

func UpdateDonationStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateDonationStatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.ValidDonationStatus(reqData.Status) {
			errors["status"] = "Invalid status! Allowed: completed, pending, failed, refunded"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateDonationStatus", reqData)
		return c.Next()
	}
}

func Rank() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RankRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.MinAmount < 0 {
			errors["minAmount"] = "Minimum amount must not be negative!"
		}
		if reqData.DurationDays <= 0 {
			errors["durationDays"] = "Duration must be greater than 0 days!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRank", reqData)
		return c.Next()
	}
}
