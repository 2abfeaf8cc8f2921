package utils

import (
	"hub/database"
	"hub/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// UptimeSummary is the aggregate over a window of uptime checks.
type UptimeSummary struct {
	TotalChecks      int     `json:"totalChecks"`
	OnlineChecks     int     `json:"onlineChecks"`
	UptimePercentage float64 `json:"uptimePercentage"`
	AvgResponseMs    float64 `json:"avgResponseMs"`
	PeakPlayers      int     `json:"peakPlayers"`
}

// AggregateUptime reduces a window of checks into a summary. Average response
// time counts online checks only; offline samples have no meaningful latency.
func AggregateUptime(checks []models.UptimeCheck) UptimeSummary {
	var s UptimeSummary
	s.TotalChecks = len(checks)
	if s.TotalChecks == 0 {
		return s
	}

	var responseSum int
	for _, c := range checks {
		if c.Online {
			s.OnlineChecks++
			responseSum += c.ResponseTimeMs
		}
		if c.PlayersOnline > s.PeakPlayers {
			s.PeakPlayers = c.PlayersOnline
		}
	}

	s.UptimePercentage = float64(s.OnlineChecks) / float64(s.TotalChecks) * 100
	if s.OnlineChecks > 0 {
		s.AvgResponseMs = float64(responseSum) / float64(s.OnlineChecks)
	}
	return s
}

// RunUptimeChecks pings every registered server through the panel API and
// records one UptimeCheck row per server. Called from the in-process cron and
// from the external cron endpoint.
func RunUptimeChecks() int {
	db := database.Database.Db

	var servers []models.GameServer
	if err := db.Find(&servers).Error; err != nil {
		log.Printf("[UPTIME] Error fetching servers: %v", err)
		return 0
	}

	panel := NewPanelClient()
	recorded := 0
	for _, server := range servers {
		check := models.UptimeCheck{
			ServerID:  server.ID,
			CheckedAt: time.Now().UTC(),
		}

		start := time.Now()
		res, err := panel.Resources(server.PanelID)
		if err != nil {
			log.Printf("[UPTIME] Server %s unreachable: %v", server.Name, err)
		} else {
			check.ResponseTimeMs = int(time.Since(start).Milliseconds())
			check.Online = res.CurrentState == "running"
			check.PlayersOnline = res.PlayersOnline
		}

		if err := db.Create(&check).Error; err != nil {
			log.Printf("[UPTIME] Error recording check for %s: %v", server.Name, err)
			continue
		}
		recorded++
	}
	return recorded
}

// InitializeUptimeScheduler starts the periodic in-process uptime pinger.
// Deployments that prefer an external cron can hit /api/cron/uptime instead.
func InitializeUptimeScheduler() {
	log.Println("[UPTIME] Initializing uptime scheduler...")

	c := cron.New()

	c.AddFunc("*/5 * * * *", func() {
		n := RunUptimeChecks()
		log.Printf("[UPTIME] Recorded %d uptime checks", n)
	})

	c.Start()
	log.Println("[UPTIME] Uptime scheduler started - runs every 5 minutes")
}
