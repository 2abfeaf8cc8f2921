package serverController

import (
	"hub/database"
	"hub/middleware"
	"hub/models"
	"hub/utils"
	validator "hub/validators/server"

	"github.com/gofiber/fiber/v2"
)

// ListServers returns all registered game servers.
func ListServers(c *fiber.Ctx) error {
	var servers []models.GameServer
	if err := database.Database.Db.Order("name ASC").Find(&servers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch servers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Servers fetched successfully!", servers)
}

// CreateServer registers a game server and its panel identifier.
func CreateServer(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedServer").(*validator.ServerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	server := models.GameServer{
		Name:    reqData.Name,
		PanelID: reqData.PanelID,
		Address: reqData.Address,
	}
	if reqData.Port != nil {
		server.Port = *reqData.Port
	}
	if reqData.Game != "" {
		server.Game = reqData.Game
	}

	if err := database.Database.Db.Create(&server).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create server!", nil)
	}

	utils.WriteAudit(staff.ID, "server.create", "game_server", server.ID, map[string]interface{}{"name": server.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Server created successfully!", server)
}

// UpdateServer edits a registered server.
func UpdateServer(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedServer").(*validator.ServerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	serverID, err := c.ParamsInt("id")
	if err != nil || serverID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid server id!", nil)
	}

	db := database.Database.Db

	var server models.GameServer
	if err := db.First(&server, serverID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	updates := map[string]interface{}{
		"name":     reqData.Name,
		"panel_id": reqData.PanelID,
		"address":  reqData.Address,
	}
	if reqData.Port != nil {
		updates["port"] = *reqData.Port
	}
	if reqData.Game != "" {
		updates["game"] = reqData.Game
	}

	if err := db.Model(&server).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update server!", nil)
	}

	utils.WriteAudit(staff.ID, "server.update", "game_server", server.ID, nil)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Server updated successfully!", server)
}

// DeleteServer removes a server and its uptime history. The panel-side server
// is untouched; only the local registration goes away.
func DeleteServer(c *fiber.Ctx) error {
	staff, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	serverID, err := c.ParamsInt("id")
	if err != nil || serverID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid server id!", nil)
	}

	db := database.Database.Db

	var server models.GameServer
	if err := db.First(&server, serverID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Server not found!", nil)
	}

	if err := db.Unscoped().Where("server_id = ?", server.ID).Delete(&models.UptimeCheck{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete server!", nil)
	}
	if err := db.Unscoped().Delete(&server).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete server!", nil)
	}

	utils.WriteAudit(staff.ID, "server.delete", "game_server", server.ID, map[string]interface{}{"name": server.Name})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Server deleted successfully!", nil)
}

// loadServer fetches the server row for the :id route param.
func loadServer(c *fiber.Ctx) (*models.GameServer, error) {
	serverID, err := c.ParamsInt("id")
	if err != nil || serverID < 1 {
		return nil, fiber.ErrBadRequest
	}

	var server models.GameServer
	if err := database.Database.Db.First(&server, serverID).Error; err != nil {
		return nil, fiber.ErrNotFound
	}
	return &server, nil
}
