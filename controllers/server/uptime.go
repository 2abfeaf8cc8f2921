package serverController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// windowStart parses the ?hours= query into the start of the stats window.
func windowStart(c *fiber.Ctx) time.Time {
	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 24*30 {
		hours = 24
	}
	return time.Now().Add(-time.Duration(hours) * time.Hour)
}

// ServerUptime returns the aggregated uptime summary for one server.
func ServerUptime(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	var checks []models.UptimeCheck
	if err := database.Database.Db.
		Where("server_id = ? AND checked_at >= ?", server.ID, windowStart(c)).
		Order("checked_at ASC").
		Find(&checks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch uptime checks!", nil)
	}

	summary := utils.AggregateUptime(checks)

	// Latest sample doubles as the current-status indicator.
	var latest *models.UptimeCheck
	if len(checks) > 0 {
		latest = &checks[len(checks)-1]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Uptime fetched successfully!", fiber.Map{
		"server":  server.Name,
		"summary": summary,
		"latest":  latest,
	})
}

// FleetUptime returns per-server summaries for all servers.
func FleetUptime(c *fiber.Ctx) error {
	db := database.Database.Db

	var servers []models.GameServer
	if err := db.Order("name ASC").Find(&servers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch servers!", nil)
	}

	since := windowStart(c)
	out := make([]fiber.Map, 0, len(servers))
	for _, server := range servers {
		var checks []models.UptimeCheck
		db.Where("server_id = ? AND checked_at >= ?", server.ID, since).Find(&checks)
		out = append(out, fiber.Map{
			"id":      server.ID,
			"name":    server.Name,
			"summary": utils.AggregateUptime(checks),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Fleet uptime fetched successfully!", out)
}

// CronUptime is the external-cron entry point: records one check per server.
// Gated by the shared-secret header middleware.
func CronUptime(c *fiber.Ctx) error {
	recorded := utils.RunUptimeChecks()
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Uptime checks recorded!", fiber.Map{
		"recorded": recorded,
	})
}
