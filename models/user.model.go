package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values. A ban replaces the role so every permission check fails closed.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
	RoleBanned    = "banned"
)

// RoleLevel maps a role to its tier for >= comparisons. Banned maps to -1 so
// banned users never pass a tier check.
func RoleLevel(role string) int {
	switch role {
	case RoleAdmin:
		return 2
	case RoleModerator:
		return 1
	case RoleUser:
		return 0
	default:
		return -1
	}
}

type User struct {
	gorm.Model
	Name            string `gorm:"default:''"`
	Email           string `gorm:"unique;not null"`
	Password        string `gorm:"not null" json:"-"`
	Role            string `gorm:"default:'user'"`
	AvatarURL       string `gorm:"default:''"`
	IsEmailVerified bool   `gorm:"default:false"`

	// Active donor rank is derived from these two fields, never stored
	// redundantly: the rank counts only while RankExpiresAt is in the future.
	DonationRankID *uint      `json:"donationRankId"`
	RankExpiresAt  *time.Time `json:"rankExpiresAt"`

	LastLogin *time.Time
	IsDeleted bool `gorm:"default:false"`
}

// HasActiveRank reports whether the user's donor rank window is still open.
// A stale DonationRankID with a past expiry does not count.
func (u *User) HasActiveRank(now time.Time) bool {
	return u.DonationRankID != nil && u.RankExpiresAt != nil && u.RankExpiresAt.After(now)
}
