package authController_test

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
	"hub/models"
	"hub/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
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

func signup(t *testing.T, app *fiber.App, name, email, password string) {
	resp := doJSON(t, app, "POST", "/api/auth/signup", "", fiber.Map{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, email, password string) (*http.Response, string) {
	resp := doJSON(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"email": email, "password": password,
	})
	if resp.StatusCode != http.StatusOK {
		return resp, ""
	}

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, env.Data.Token
}

func TestSignupAndLogin(t *testing.T) {
	app := setupApp(t)

	signup(t, app, "Alice", "alice@example.com", "correct horse")

	// Passwords are never stored in the clear.
	var user models.User
	require.NoError(t, database.Database.Db.First(&user).Error)
	assert.NotEqual(t, "correct horse", user.Password)
	assert.Equal(t, models.RoleUser, user.Role)

	resp, token := login(t, app, "alice@example.com", "correct horse")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, token)

	resp, _ = login(t, app, "alice@example.com", "wrong password")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateEmailRejected(t *testing.T) {
	app := setupApp(t)

	signup(t, app, "Alice", "alice@example.com", "correct horse")

	resp := doJSON(t, app, "POST", "/api/auth/signup", "", fiber.Map{
		"name": "Imposter", "email": "alice@example.com", "password": "battery staple",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBannedUserCannotLogin(t *testing.T) {
	app := setupApp(t)

	signup(t, app, "Troll", "troll@example.com", "password123")
	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("email = ?", "troll@example.com").
		Update("role", models.RoleBanned).Error)

	resp, _ := login(t, app, "troll@example.com", "password123")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProfileReportsActiveRank(t *testing.T) {
	app := setupApp(t)

	signup(t, app, "Donor", "donor@example.com", "password123")
	resp, token := login(t, app, "donor@example.com", "password123")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rank := models.DonorRank{Name: "Supporter", DurationDays: 30}
	require.NoError(t, database.Database.Db.Create(&rank).Error)

	expires := time.Now().AddDate(0, 0, 10)
	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("email = ?", "donor@example.com").
		Updates(map[string]interface{}{
			"donation_rank_id": rank.ID,
			"rank_expires_at":  expires,
		}).Error)

	resp = doJSON(t, app, "GET", "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			HasRank bool              `json:"hasRank"`
			Rank    *models.DonorRank `json:"rank"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	assert.True(t, env.Data.HasRank)
	require.NotNil(t, env.Data.Rank)
	assert.Equal(t, "Supporter", env.Data.Rank.Name)
}

func TestProfileIgnoresExpiredRank(t *testing.T) {
	app := setupApp(t)

	signup(t, app, "Lapsed", "lapsed@example.com", "password123")
	resp, token := login(t, app, "lapsed@example.com", "password123")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rank := models.DonorRank{Name: "Supporter", DurationDays: 30}
	require.NoError(t, database.Database.Db.Create(&rank).Error)

	expired := time.Now().AddDate(0, 0, -1)
	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("email = ?", "lapsed@example.com").
		Updates(map[string]interface{}{
			"donation_rank_id": rank.ID,
			"rank_expires_at":  expired,
		}).Error)

	resp = doJSON(t, app, "GET", "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			HasRank bool              `json:"hasRank"`
			Rank    *models.DonorRank `json:"rank"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	assert.False(t, env.Data.HasRank)
	assert.Nil(t, env.Data.Rank)
}

func TestUpdateProfile(t *testing.T) {
	app := setupApp(t)

	signup(t, app, "Old Name", "user@example.com", "password123")
	resp, token := login(t, app, "user@example.com", "password123")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "PUT", "/api/auth/profile", token, fiber.Map{
		"name":      "New Name",
		"avatarUrl": "https://cdn.example.com/a.png",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "user@example.com").First(&user).Error)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", user.AvatarURL)

	// Empty body has nothing to apply.
	resp = doJSON(t, app, "PUT", "/api/auth/profile", token, fiber.Map{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
