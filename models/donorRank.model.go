package models

import "gorm.io/gorm"

// DonorRank is a purchasable, time-limited entitlement tier. A user's active
// rank is derived from User.DonationRankID + User.RankExpiresAt.
type DonorRank struct {
	gorm.Model
	Name         string  `gorm:"unique;not null"`
	MinAmount    float64 `gorm:"default:0"`
	Color        string  `gorm:"default:'#ffffff'"`
	Icon         string  `gorm:"default:''"`
	DurationDays int     `gorm:"not null"`

	// External billing identifiers (product/price on the payment provider).
	BillingProductID string `gorm:"default:''"`
	BillingPriceID   string `gorm:"default:''"`

	OrderIndex int `gorm:"default:0"`
}
