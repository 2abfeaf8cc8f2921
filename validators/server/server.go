package serverValidators

import (
	"hub/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type ServerRequest struct {
	Name    string `json:"name"`
	PanelID string `json:"panelId"`
	Address string `json:"address"`
	Port    *int   `json:"port"`
	Game    string `json:"game"`
}

type PowerRequest struct {
	Signal string `json:"signal"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

type FileWriteRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type FileDeleteRequest struct {
	Root  string   `json:"root"`
	Files []string `json:"files"`
}

type DatabaseCreateRequest struct {
	Name   string `json:"name"`
	Remote string `json:"remote"`
}

type BackupCreateRequest struct {
	Name string `json:"name"`
}

type VariableUpdateRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func Server() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ServerRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		}
		reqData.PanelID = strings.TrimSpace(reqData.PanelID)
		if reqData.PanelID == "" {
			errors["panelId"] = "Panel identifier is required!"
		}
		reqData.Address = strings.TrimSpace(reqData.Address)
		if reqData.Address == "" {
			errors["address"] = "Address is required!"
		}
		if reqData.Port != nil && (*reqData.Port < 1 || *reqData.Port > 65535) {
			errors["port"] = "Port must be between 1 and 65535!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedServer", reqData)
		return c.Next()
	}
}

func Power() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PowerRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		valid := map[string]bool{"start": true, "stop": true, "restart": true, "kill": true}
		if !valid[reqData.Signal] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"signal": "Invalid signal! Allowed: start, stop, restart, kill",
			})
		}

		c.Locals("validatedPower", reqData)
		return c.Next()
	}
}

func Command() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CommandRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Command = strings.TrimSpace(reqData.Command)
		if reqData.Command == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"command": "Command is required!"})
		}

		c.Locals("validatedCommand", reqData)
		return c.Next()
	}
}

func FileWrite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(FileWriteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Path) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"path": "Path is required!"})
		}

		c.Locals("validatedFileWrite", reqData)
		return c.Next()
	}
}

func FileDelete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(FileDeleteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Files) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"files": "At least one file is required!"})
		}
		if reqData.Root == "" {
			reqData.Root = "/"
		}

		c.Locals("validatedFileDelete", reqData)
		return c.Next()
	}
}

func DatabaseCreate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DatabaseCreateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Database name is required!"})
		}
		if reqData.Remote == "" {
			reqData.Remote = "%"
		}

		c.Locals("validatedDatabaseCreate", reqData)
		return c.Next()
	}
}

func BackupCreate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BackupCreateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedBackupCreate", reqData)
		return c.Next()
	}
}

func VariableUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VariableUpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Key) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"key": "Variable key is required!"})
		}

		c.Locals("validatedVariableUpdate", reqData)
		return c.Next()
	}
}
