package serverController

import (
	"errors"
	"hub/middleware"
	"hub/utils"
	validator "hub/validators/server"
	"log"

	"github.com/gofiber/fiber/v2"
)

// panelFailure maps an upstream panel error onto a generic 502. Panel error
// bodies are logged but never forwarded to the browser.
func panelFailure(c *fiber.Ctx, op string, err error) error {
	var perr *utils.PanelError
	if errors.As(err, &perr) {
		log.Printf("[PANEL] %s failed: %v", op, perr)
	} else {
		log.Printf("[PANEL] %s unreachable: %v", op, err)
	}
	return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Panel request failed. Try again later.", nil)
}

// Power relays a power signal to the panel.
func Power(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPower").(*validator.PowerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	if err := utils.NewPanelClient().Power(server.PanelID, reqData.Signal); err != nil {
		return panelFailure(c, "power", err)
	}

	utils.WriteAudit(staff.ID, "server.power", "game_server", server.ID, map[string]interface{}{"signal": reqData.Signal})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Power signal sent!", nil)
}

// SendCommand relays a console command to the panel.
func SendCommand(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCommand").(*validator.CommandRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	if err := utils.NewPanelClient().SendCommand(server.PanelID, reqData.Command); err != nil {
		return panelFailure(c, "command", err)
	}

	utils.WriteAudit(staff.ID, "server.command", "game_server", server.ID, map[string]interface{}{"command": reqData.Command})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Command sent!", nil)
}

// Resources relays the live state and resource usage.
func Resources(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	res, err := utils.NewPanelClient().Resources(server.PanelID)
	if err != nil {
		return panelFailure(c, "resources", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched!", res)
}

// ListFiles relays a directory listing.
func ListFiles(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	directory := c.Query("directory", "/")
	files, err := utils.NewPanelClient().ListFiles(server.PanelID, directory)
	if err != nil {
		return panelFailure(c, "file list", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Files fetched!", files)
}

// ReadFile relays a file read.
func ReadFile(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	path := c.Query("file")
	if path == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File path is required!", nil)
	}

	content, err := utils.NewPanelClient().ReadFile(server.PanelID, path)
	if err != nil {
		return panelFailure(c, "file read", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File fetched!", fiber.Map{"path": path, "content": content})
}

// WriteFile relays a file write.
func WriteFile(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFileWrite").(*validator.FileWriteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	if err := utils.NewPanelClient().WriteFile(server.PanelID, reqData.Path, reqData.Content); err != nil {
		return panelFailure(c, "file write", err)
	}

	utils.WriteAudit(staff.ID, "server.file.write", "game_server", server.ID, map[string]interface{}{"path": reqData.Path})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "File saved!", nil)
}

// DeleteFiles relays a file delete.
func DeleteFiles(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFileDelete").(*validator.FileDeleteRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	if err := utils.NewPanelClient().DeleteFiles(server.PanelID, reqData.Root, reqData.Files); err != nil {
		return panelFailure(c, "file delete", err)
	}

	utils.WriteAudit(staff.ID, "server.file.delete", "game_server", server.ID, map[string]interface{}{"files": reqData.Files})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Files deleted!", nil)
}

// ListDatabases relays the database listing.
func ListDatabases(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	dbs, err := utils.NewPanelClient().ListDatabases(server.PanelID)
	if err != nil {
		return panelFailure(c, "database list", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Databases fetched!", dbs)
}

// CreateDatabase relays a database create.
func CreateDatabase(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedDatabaseCreate").(*validator.DatabaseCreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	created, err := utils.NewPanelClient().CreateDatabase(server.PanelID, reqData.Name, reqData.Remote)
	if err != nil {
		return panelFailure(c, "database create", err)
	}

	utils.WriteAudit(staff.ID, "server.database.create", "game_server", server.ID, map[string]interface{}{"name": reqData.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Database created!", created)
}

// DeleteDatabase relays a database delete.
func DeleteDatabase(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	databaseID := c.Params("databaseId")
	if databaseID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Database id is required!", nil)
	}

	if err := utils.NewPanelClient().DeleteDatabase(server.PanelID, databaseID); err != nil {
		return panelFailure(c, "database delete", err)
	}

	utils.WriteAudit(staff.ID, "server.database.delete", "game_server", server.ID, map[string]interface{}{"databaseId": databaseID})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Database deleted!", nil)
}

// ListBackups relays the backup listing.
func ListBackups(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	backups, err := utils.NewPanelClient().ListBackups(server.PanelID)
	if err != nil {
		return panelFailure(c, "backup list", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Backups fetched!", backups)
}

// CreateBackup relays a backup create.
func CreateBackup(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBackupCreate").(*validator.BackupCreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	backup, err := utils.NewPanelClient().CreateBackup(server.PanelID, reqData.Name)
	if err != nil {
		return panelFailure(c, "backup create", err)
	}

	utils.WriteAudit(staff.ID, "server.backup.create", "game_server", server.ID, map[string]interface{}{"name": reqData.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Backup started!", backup)
}

// DeleteBackup relays a backup delete.
func DeleteBackup(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	backupID := c.Params("backupId")
	if backupID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Backup id is required!", nil)
	}

	if err := utils.NewPanelClient().DeleteBackup(server.PanelID, backupID); err != nil {
		return panelFailure(c, "backup delete", err)
	}

	utils.WriteAudit(staff.ID, "server.backup.delete", "game_server", server.ID, map[string]interface{}{"backupId": backupID})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Backup deleted!", nil)
}

// StartupVariables relays the startup variable listing.
func StartupVariables(c *fiber.Ctx) error {
	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	vars, err := utils.NewPanelClient().StartupVariables(server.PanelID)
	if err != nil {
		return panelFailure(c, "startup variables", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Variables fetched!", vars)
}

// UpdateStartupVariable relays a startup variable update.
func UpdateStartupVariable(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVariableUpdate").(*validator.VariableUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server, err := loadServer(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	updated, err := utils.NewPanelClient().UpdateStartupVariable(server.PanelID, reqData.Key, reqData.Value)
	if err != nil {
		return panelFailure(c, "variable update", err)
	}

	utils.WriteAudit(staff.ID, "server.startup.update", "game_server", server.ID, map[string]interface{}{"key": reqData.Key})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Variable updated!", updated)
}
