package serverRoutes

import (
	"hub/config"
	controller "hub/controllers/server"
	"hub/middleware"
	"hub/models"
	validator "hub/validators/server"

	"github.com/gofiber/fiber/v2"
)

func SetupServerRoutes(app *fiber.App) {
	// Public status page data.
	app.Get("/api/servers", controller.ListServers)
	app.Get("/api/servers/uptime", controller.FleetUptime)
	app.Get("/api/servers/:id/uptime", controller.ServerUptime)

	// Admin panel proxy namespace.
	admin := app.Group("/api/admin/panel/servers", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))
	admin.Post("/", validator.Server(), controller.CreateServer)
	admin.Put("/:id", validator.Server(), controller.UpdateServer)
	admin.Delete("/:id", controller.DeleteServer)

	admin.Post("/:id/power", validator.Power(), controller.Power)
	admin.Post("/:id/command", validator.Command(), controller.SendCommand)
	admin.Get("/:id/resources", controller.Resources)
	admin.Get("/:id/console", controller.StreamConsole)

	admin.Get("/:id/files", controller.ListFiles)
	admin.Get("/:id/files/contents", controller.ReadFile)
	admin.Post("/:id/files/write", validator.FileWrite(), controller.WriteFile)
	admin.Post("/:id/files/delete", validator.FileDelete(), controller.DeleteFiles)

	admin.Get("/:id/databases", controller.ListDatabases)
	admin.Post("/:id/databases", validator.DatabaseCreate(), controller.CreateDatabase)
	admin.Delete("/:id/databases/:databaseId", controller.DeleteDatabase)

	admin.Get("/:id/backups", controller.ListBackups)
	admin.Post("/:id/backups", validator.BackupCreate(), controller.CreateBackup)
	admin.Delete("/:id/backups/:backupId", controller.DeleteBackup)

	admin.Get("/:id/startup", controller.StartupVariables)
	admin.Put("/:id/startup/variable", validator.VariableUpdate(), controller.UpdateStartupVariable)

	// External cron entry point, shared-secret gated.
	app.Post("/api/cron/uptime", middleware.CronSecretMiddleware(config.AppConfig.CronSecret), controller.CronUptime)
}
