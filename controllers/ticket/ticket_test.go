package ticketController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hub/config"
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/routers/ticketRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{
		JWTKey:  "test-secret",
		BaseURL: "http://localhost:3000",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	ticketRoutes.SetupTicketRoutes(app)
	return app
}

func createUser(t *testing.T, email, role string) (models.User, string) {
	user := models.User{Name: "Test " + role, Email: email, Password: "hashed", Role: role}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, envelope, string) {
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env, string(raw)
}

func TestGuestTicketLifecycle(t *testing.T) {
	app := setupApp(t)
	_, staffToken := createUser(t, "mod@example.com", models.RoleModerator)

	// Guest opens a ticket. The access token must never appear in the body.
	code, env, raw := doRequest(t, app, jsonRequest("POST", "/api/tickets/guest", "", fiber.Map{
		"subject":    "Cannot join the server",
		"message":    "I get kicked on login.",
		"guestEmail": "guest@example.com",
		"guestName":  "Guest",
	}))
	require.Equal(t, http.StatusOK, code)
	require.True(t, env.Status)

	var ticket models.Ticket
	require.NoError(t, database.Database.Db.First(&ticket).Error)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	require.NotEmpty(t, ticket.AccessToken)
	assert.NotContains(t, raw, ticket.AccessToken)

	// Staff resolves it.
	code, _, _ = doRequest(t, app, jsonRequest("PUT",
		fmt.Sprintf("/api/admin/tickets/%d/status", ticket.ID), staffToken,
		fiber.Map{"status": models.TicketResolved}))
	require.Equal(t, http.StatusOK, code)

	// Guest replies bounce off a resolved ticket.
	code, env, _ = doRequest(t, app, jsonRequest("POST",
		"/api/tickets/guest/messages?token="+ticket.AccessToken, "",
		fiber.Map{"message": "Still broken."}))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "resolved")

	var count int64
	database.Database.Db.Model(&models.TicketMessage{}).Where("ticket_id = ?", ticket.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// Staff reopens; the same reply now lands.
	code, _, _ = doRequest(t, app, jsonRequest("PUT",
		fmt.Sprintf("/api/admin/tickets/%d/status", ticket.ID), staffToken,
		fiber.Map{"status": models.TicketOpen}))
	require.Equal(t, http.StatusOK, code)

	code, _, _ = doRequest(t, app, jsonRequest("POST",
		"/api/tickets/guest/messages?token="+ticket.AccessToken, "",
		fiber.Map{"message": "Still broken."}))
	assert.Equal(t, http.StatusOK, code)

	database.Database.Db.Model(&models.TicketMessage{}).Where("ticket_id = ?", ticket.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestCloseStampsClosedAtAndReopenClearsIt(t *testing.T) {
	app := setupApp(t)
	_, staffToken := createUser(t, "mod@example.com", models.RoleModerator)
	user, userToken := createUser(t, "owner@example.com", models.RoleUser)

	code, _, _ := doRequest(t, app, jsonRequest("POST", "/api/tickets/", userToken, fiber.Map{
		"subject": "Rank not applied",
		"message": "Donated an hour ago.",
	}))
	require.Equal(t, http.StatusOK, code)

	var ticket models.Ticket
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&ticket).Error)
	require.Nil(t, ticket.ClosedAt)

	code, _, _ = doRequest(t, app, jsonRequest("PUT",
		fmt.Sprintf("/api/admin/tickets/%d/status", ticket.ID), staffToken,
		fiber.Map{"status": models.TicketClosed}))
	require.Equal(t, http.StatusOK, code)

	require.NoError(t, database.Database.Db.First(&ticket, ticket.ID).Error)
	assert.Equal(t, models.TicketClosed, ticket.Status)
	assert.NotNil(t, ticket.ClosedAt)

	code, _, _ = doRequest(t, app, jsonRequest("PUT",
		fmt.Sprintf("/api/admin/tickets/%d/status", ticket.ID), staffToken,
		fiber.Map{"status": models.TicketOpen}))
	require.Equal(t, http.StatusOK, code)

	// Reload into a fresh struct: a NULL column leaves an existing pointer
	// field untouched on scan.
	var reopened models.Ticket
	require.NoError(t, database.Database.Db.First(&reopened, ticket.ID).Error)
	assert.Equal(t, models.TicketOpen, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
}

// The resend endpoint must answer identically for known and unknown emails so
// it cannot be used to probe which addresses have tickets.
func TestResendAccessDoesNotLeakExistence(t *testing.T) {
	app := setupApp(t)

	code, _, _ := doRequest(t, app, jsonRequest("POST", "/api/tickets/guest", "", fiber.Map{
		"subject":    "Lost my link",
		"message":    "Help",
		"guestEmail": "known@example.com",
		"guestName":  "Known",
	}))
	require.Equal(t, http.StatusOK, code)

	var before models.Ticket
	require.NoError(t, database.Database.Db.First(&before).Error)

	codeKnown, _, rawKnown := doRequest(t, app, jsonRequest("POST", "/api/tickets/guest/resend-access", "",
		fiber.Map{"email": "known@example.com"}))
	codeUnknown, _, rawUnknown := doRequest(t, app, jsonRequest("POST", "/api/tickets/guest/resend-access", "",
		fiber.Map{"email": "nobody@example.com"}))

	assert.Equal(t, http.StatusOK, codeKnown)
	assert.Equal(t, http.StatusOK, codeUnknown)
	assert.Equal(t, rawKnown, rawUnknown)

	// The known email's token was rotated; the old link is dead.
	var after models.Ticket
	require.NoError(t, database.Database.Db.First(&after, before.ID).Error)
	assert.NotEqual(t, before.AccessToken, after.AccessToken)

	code, _, _ = doRequest(t, app, jsonRequest("GET", "/api/tickets/guest?token="+before.AccessToken, "", nil))
	assert.Equal(t, http.StatusNotFound, code)

	code, _, _ = doRequest(t, app, jsonRequest("GET", "/api/tickets/guest?token="+after.AccessToken, "", nil))
	assert.Equal(t, http.StatusOK, code)
}

func TestTicketsAreOwnerScoped(t *testing.T) {
	app := setupApp(t)
	owner, ownerToken := createUser(t, "owner@example.com", models.RoleUser)
	_, otherToken := createUser(t, "other@example.com", models.RoleUser)

	code, _, _ := doRequest(t, app, jsonRequest("POST", "/api/tickets/", ownerToken, fiber.Map{
		"subject": "Private matter",
		"message": "Details inside.",
	}))
	require.Equal(t, http.StatusOK, code)

	var ticket models.Ticket
	require.NoError(t, database.Database.Db.Where("user_id = ?", owner.ID).First(&ticket).Error)

	code, _, _ = doRequest(t, app, jsonRequest("GET", fmt.Sprintf("/api/tickets/%d", ticket.ID), ownerToken, nil))
	assert.Equal(t, http.StatusOK, code)

	code, _, _ = doRequest(t, app, jsonRequest("GET", fmt.Sprintf("/api/tickets/%d", ticket.ID), otherToken, nil))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDeleteTicketRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	_, modToken := createUser(t, "mod@example.com", models.RoleModerator)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)
	user, userToken := createUser(t, "owner@example.com", models.RoleUser)

	code, _, _ := doRequest(t, app, jsonRequest("POST", "/api/tickets/", userToken, fiber.Map{
		"subject": "Please remove",
		"message": "Posted by accident.",
	}))
	require.Equal(t, http.StatusOK, code)

	var ticket models.Ticket
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&ticket).Error)

	code, _, _ = doRequest(t, app, jsonRequest("DELETE", fmt.Sprintf("/api/admin/tickets/%d", ticket.ID), modToken, nil))
	assert.Equal(t, http.StatusForbidden, code)

	code, _, _ = doRequest(t, app, jsonRequest("DELETE", fmt.Sprintf("/api/admin/tickets/%d", ticket.ID), adminToken, nil))
	assert.Equal(t, http.StatusOK, code)

	err := database.Database.Db.First(&models.Ticket{}, ticket.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBannedUserCannotUseTickets(t *testing.T) {
	app := setupApp(t)
	_, bannedToken := createUser(t, "banned@example.com", models.RoleBanned)

	code, _, _ := doRequest(t, app, jsonRequest("POST", "/api/tickets/", bannedToken, fiber.Map{
		"subject": "Unban me",
		"message": "Please.",
	}))
	assert.Equal(t, http.StatusForbidden, code)
}

func TestStatusChangeAuditsTransition(t *testing.T) {
	app := setupApp(t)
	staff, staffToken := createUser(t, "mod@example.com", models.RoleModerator)
	user, userToken := createUser(t, "owner@example.com", models.RoleUser)

	code, _, _ := doRequest(t, app, jsonRequest("POST", "/api/tickets/", userToken, fiber.Map{
		"subject": "Login broken",
		"message": "Since the update.",
	}))
	require.Equal(t, http.StatusOK, code)

	var ticket models.Ticket
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&ticket).Error)

	code, _, _ = doRequest(t, app, jsonRequest("PUT",
		fmt.Sprintf("/api/admin/tickets/%d/status", ticket.ID), staffToken,
		fiber.Map{"status": models.TicketClosed}))
	require.Equal(t, http.StatusOK, code)

	// The audit entry records the transition, not the post-update state twice.
	var entry models.AuditLogEntry
	require.NoError(t, database.Database.Db.Where("action = ?", "ticket.status").First(&entry).Error)
	assert.Equal(t, staff.ID, entry.ActorID)

	var details map[string]string
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, models.TicketOpen, details["from"])
	assert.Equal(t, models.TicketClosed, details["to"])
}
