package utils

import (
	"hub/database"
	"hub/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// ApplyRankGrant sets the user's rank window for a completed donation.
// Renewals extend from the later of now or the current expiry, so remaining
// paid time is never lost and a lapsed rank restarts from now.
func ApplyRankGrant(user *models.User, rankID uint, days int, now time.Time) {
	base := now
	if user.RankExpiresAt != nil && user.RankExpiresAt.After(now) {
		base = *user.RankExpiresAt
	}
	expires := base.AddDate(0, 0, days)
	user.DonationRankID = &rankID
	user.RankExpiresAt = &expires
}

// InitializeRankScheduler starts the daily sweep that clears rank ids left
// behind long after expiry. Expiry itself needs no sweep: HasActiveRank is
// computed from the timestamp.
func InitializeRankScheduler() {
	log.Println("[RANK-SCHEDULER] Initializing rank scheduler...")

	c := cron.New()

	c.AddFunc("30 4 * * *", func() {
		log.Println("[RANK-SCHEDULER] Running daily rank cleanup...")
		CleanupExpiredRanks()
	})

	c.Start()
	log.Println("[RANK-SCHEDULER] Rank scheduler started - runs daily at 4:30 AM")
}

// CleanupExpiredRanks clears DonationRankID for users whose rank expired more
// than 30 days ago. Keeps the stale id around for a grace window so support
// can see what someone recently had.
func CleanupExpiredRanks() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -30)

	result := db.Model(&models.User{}).
		Where("donation_rank_id IS NOT NULL AND rank_expires_at < ?", cutoff).
		Updates(map[string]interface{}{"donation_rank_id": nil})

	if result.Error != nil {
		log.Printf("[RANK-SCHEDULER] Error cleaning up ranks: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[RANK-SCHEDULER] Cleared %d long-expired ranks", result.RowsAffected)
	}
}
