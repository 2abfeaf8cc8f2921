package serverController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hub/config"
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/routers/serverRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{
		JWTKey:     "test-secret",
		CronSecret: "cron-secret",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	serverRoutes.SetupServerRoutes(app)
	return app
}

func adminToken(t *testing.T) string {
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "hashed", Role: models.RoleAdmin}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func createServer(t *testing.T, name, panelID string) models.GameServer {
	server := models.GameServer{Name: name, PanelID: panelID, Address: "play.example.com"}
	require.NoError(t, database.Database.Db.Create(&server).Error)
	return server
}

func seedChecks(t *testing.T, serverID uint, online, offline int) {
	now := time.Now()
	for i := 0; i < online; i++ {
		require.NoError(t, database.Database.Db.Create(&models.UptimeCheck{
			ServerID: serverID, Online: true, ResponseTimeMs: 40, PlayersOnline: 5,
			CheckedAt: now.Add(-time.Duration(i) * time.Minute),
		}).Error)
	}
	for i := 0; i < offline; i++ {
		require.NoError(t, database.Database.Db.Create(&models.UptimeCheck{
			ServerID: serverID, Online: false,
			CheckedAt: now.Add(-time.Duration(online+i) * time.Minute),
		}).Error)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestServerUptimeSummary(t *testing.T) {
	app := setupApp(t)
	server := createServer(t, "survival", "srv-1")
	seedChecks(t, server.ID, 8, 2)

	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/servers/%d/uptime", server.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			Summary struct {
				TotalChecks      int     `json:"totalChecks"`
				UptimePercentage float64 `json:"uptimePercentage"`
				AvgResponseMs    float64 `json:"avgResponseMs"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	assert.Equal(t, 10, env.Data.Summary.TotalChecks)
	assert.Equal(t, 80.0, env.Data.Summary.UptimePercentage)
	assert.Equal(t, 40.0, env.Data.Summary.AvgResponseMs)
}

// Checks older than the requested window are excluded from the summary.
func TestServerUptimeWindowExcludesOldChecks(t *testing.T) {
	app := setupApp(t)
	server := createServer(t, "survival", "srv-1")

	now := time.Now()
	require.NoError(t, database.Database.Db.Create(&models.UptimeCheck{
		ServerID: server.ID, Online: true, CheckedAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, database.Database.Db.Create(&models.UptimeCheck{
		ServerID: server.ID, Online: false, CheckedAt: now.Add(-48 * time.Hour),
	}).Error)

	resp := doJSON(t, app, "GET", fmt.Sprintf("/api/servers/%d/uptime?hours=24", server.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			Summary struct {
				TotalChecks      int     `json:"totalChecks"`
				UptimePercentage float64 `json:"uptimePercentage"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	assert.Equal(t, 1, env.Data.Summary.TotalChecks)
	assert.Equal(t, 100.0, env.Data.Summary.UptimePercentage)
}

func TestFleetUptimeListsEveryServer(t *testing.T) {
	app := setupApp(t)
	a := createServer(t, "creative", "srv-a")
	createServer(t, "survival", "srv-b")
	seedChecks(t, a.ID, 2, 0)

	resp := doJSON(t, app, "GET", "/api/servers/uptime", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data []struct {
			Name    string `json:"name"`
			Summary struct {
				TotalChecks int `json:"totalChecks"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	require.Len(t, env.Data, 2)
	assert.Equal(t, "creative", env.Data[0].Name)
	assert.Equal(t, 2, env.Data[0].Summary.TotalChecks)
	assert.Equal(t, 0, env.Data[1].Summary.TotalChecks)
}

func TestCronEndpointRequiresSecret(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("POST", "/api/cron/uptime", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("POST", "/api/cron/uptime", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// With no servers registered the run is a no-op, but the gate passes.
	req = httptest.NewRequest("POST", "/api/cron/uptime", nil)
	req.Header.Set("X-Cron-Secret", "cron-secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServerCRUDRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	resp := doJSON(t, app, "POST", "/api/admin/panel/servers/", "", fiber.Map{
		"name": "lobby", "panelId": "srv-9", "address": "lobby.example.com",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/api/admin/panel/servers/", token, fiber.Map{
		"name": "lobby", "panelId": "srv-9", "address": "lobby.example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var server models.GameServer
	require.NoError(t, database.Database.Db.Where("panel_id = ?", "srv-9").First(&server).Error)
	assert.Equal(t, 25565, server.Port)

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/admin/panel/servers/%d", server.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	err := database.Database.Db.First(&models.GameServer{}, server.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
