package donationController_test

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
	"hub/routers/donationRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	donationRoutes.SetupDonationRoutes(app)
	return app
}

func createAdmin(t *testing.T) string {
	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "hashed", Role: models.RoleAdmin}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func createDonor(t *testing.T) models.User {
	donor := models.User{Name: "Donor", Email: "donor@example.com", Password: "hashed", Role: models.RoleUser}
	require.NoError(t, database.Database.Db.Create(&donor).Error)
	return donor
}

func createRank(t *testing.T, days int) models.DonorRank {
	rank := models.DonorRank{Name: "Supporter", MinAmount: 10, DurationDays: days}
	require.NoError(t, database.Database.Db.Create(&rank).Error)
	return rank
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

func TestCompletedDonationGrantsRank(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)
	donor := createDonor(t)
	rank := createRank(t, 30)

	resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
		"userId": donor.ID,
		"amount": 10.0,
		"method": "manual",
		"status": models.DonationCompleted,
		"rankId": rank.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, database.Database.Db.First(&updated, donor.ID).Error)
	require.NotNil(t, updated.DonationRankID)
	require.NotNil(t, updated.RankExpiresAt)
	assert.Equal(t, rank.ID, *updated.DonationRankID)
	assert.True(t, updated.RankExpiresAt.After(time.Now().AddDate(0, 0, 29)))
}

// Completing a second donation while the rank is active must extend the
// window, never shorten or reset it.
func TestRenewalExtendsActiveRank(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)
	donor := createDonor(t)
	rank := createRank(t, 30)

	record := func() {
		resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
			"userId": donor.ID,
			"amount": 10.0,
			"method": "manual",
			"status": models.DonationCompleted,
			"rankId": rank.ID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	record()
	var first models.User
	require.NoError(t, database.Database.Db.First(&first, donor.ID).Error)
	require.NotNil(t, first.RankExpiresAt)

	record()
	var second models.User
	require.NoError(t, database.Database.Db.First(&second, donor.ID).Error)
	require.NotNil(t, second.RankExpiresAt)

	assert.True(t, second.RankExpiresAt.After(*first.RankExpiresAt))
	// Roughly 60 days out: the second grant stacked on the first.
	assert.True(t, second.RankExpiresAt.After(time.Now().AddDate(0, 0, 59)))
}

// Pending donations grant nothing until completed.
func TestPendingDonationGrantsOnCompletion(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)
	donor := createDonor(t)
	rank := createRank(t, 30)

	resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
		"userId": donor.ID,
		"amount": 10.0,
		"method": "manual",
		"status": models.DonationPending,
		"rankId": rank.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.First(&user, donor.ID).Error)
	assert.Nil(t, user.DonationRankID)

	var donation models.Donation
	require.NoError(t, database.Database.Db.First(&donation).Error)

	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/admin/donations/%d/status", donation.ID), token,
		fiber.Map{"status": models.DonationCompleted})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, database.Database.Db.First(&user, donor.ID).Error)
	require.NotNil(t, user.DonationRankID)
	assert.Equal(t, rank.ID, *user.DonationRankID)
}

// Refunding reverses revenue only. The rank stays until an admin revokes it.
func TestRefundDoesNotRevokeRank(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)
	donor := createDonor(t)
	rank := createRank(t, 30)

	resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
		"userId": donor.ID,
		"amount": 10.0,
		"method": "manual",
		"status": models.DonationCompleted,
		"rankId": rank.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var donation models.Donation
	require.NoError(t, database.Database.Db.First(&donation).Error)

	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/admin/donations/%d/status", donation.ID), token,
		fiber.Map{"status": models.DonationRefunded})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.First(&user, donor.ID).Error)
	assert.NotNil(t, user.DonationRankID)
	assert.True(t, user.HasActiveRank(time.Now()))

	// The explicit revoke is the admin action that pairs with a refund.
	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/admin/users/%d/revoke-rank", donor.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Fresh struct: NULLed columns leave existing pointer fields untouched
	// on scan.
	var revoked models.User
	require.NoError(t, database.Database.Db.First(&revoked, donor.ID).Error)
	assert.Nil(t, revoked.DonationRankID)
	assert.Nil(t, revoked.RankExpiresAt)
}

func TestDonationStatsExcludeRefunds(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)

	for _, status := range []string{models.DonationCompleted, models.DonationCompleted, models.DonationRefunded} {
		resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
			"amount": 5.0,
			"method": "manual",
			"status": status,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, app, "GET", "/api/admin/donations/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			TotalRevenue   float64 `json:"totalRevenue"`
			RefundedAmount float64 `json:"refundedAmount"`
			CompletedCount int64   `json:"completedCount"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()

	assert.Equal(t, 10.0, env.Data.TotalRevenue)
	assert.Equal(t, 5.0, env.Data.RefundedAmount)
	assert.Equal(t, int64(2), env.Data.CompletedCount)
}

func TestEveryDonationGetsUniqueReceipt(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)

	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
			"amount": 1.0,
			"method": "manual",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var donations []models.Donation
	require.NoError(t, database.Database.Db.Find(&donations).Error)
	require.Len(t, donations, 3)

	seen := map[string]bool{}
	for _, d := range donations {
		assert.True(t, strings.HasPrefix(d.ReceiptNumber, "RCPT-"))
		assert.False(t, seen[d.ReceiptNumber])
		seen[d.ReceiptNumber] = true
	}
}

// A completed donation pointing at a rank that no longer exists must not fail
// the request or corrupt the user; the failed grant is only logged.
func TestGrantSkipsMissingRank(t *testing.T) {
	app := setupApp(t)
	token := createAdmin(t)
	donor := createDonor(t)

	resp := doJSON(t, app, "POST", "/api/admin/donations", token, fiber.Map{
		"userId": donor.ID,
		"amount": 10.0,
		"method": "manual",
		"status": models.DonationCompleted,
		"rankId": 999,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, database.Database.Db.First(&user, donor.ID).Error)
	assert.Nil(t, user.DonationRankID)
	assert.Nil(t, user.RankExpiresAt)
}
