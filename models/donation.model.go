package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentOneTime             = "one_time"
	PaymentSubscription        = "subscription"
	PaymentSubscriptionRenewal = "subscription_renewal"
)

const (
	DonationCompleted = "completed"
	DonationPending   = "pending"
	DonationFailed    = "failed"
	DonationRefunded  = "refunded"
)

// Donation records a payment. Completed donations are immutable apart from
// admin corrections and status transitions (e.g. to refunded).
type Donation struct {
	gorm.Model
	UserID      *uint   `json:"userId"` // nil for manual/guest entries
	Amount      float64 `gorm:"not null"`
	Currency    string  `gorm:"default:'EUR'"`
	Method      string  `gorm:"default:''"` // e.g. stripe, paypal, manual
	PaymentType string  `gorm:"default:'one_time'"`
	Status      string  `gorm:"default:'pending'"`

	RankID *uint `json:"rankId"`
	Days   int   `gorm:"default:0"` // rank grant duration

	ReceiptNumber          string         `gorm:"uniqueIndex;not null"`
	ExternalPaymentID      string         `gorm:"default:''"`
	ExternalSubscriptionID string         `gorm:"default:''"`
	GatewayPayload         datatypes.JSON `json:"-"` // raw gateway response, kept for disputes
}

func ValidPaymentType(t string) bool {
	switch t {
	case PaymentOneTime, PaymentSubscription, PaymentSubscriptionRenewal:
		return true
	}
	return false
}

func ValidDonationStatus(s string) bool {
	switch s {
	case DonationCompleted, DonationPending, DonationFailed, DonationRefunded:
		return true
	}
	return false
}
