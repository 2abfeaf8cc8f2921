package forumValidators

import (
	"hub/middleware"
	"hub/models"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ViewRole    *string `json:"viewRole"`
	CreateRole  *string `json:"createRole"`
	ReplyRole   *string `json:"replyRole"`
	OrderIndex  *int    `json:"orderIndex"`
}

type ReorderRequest struct {
	// Category ids in their new display order.
	Order []uint `json:"order"`
}

type CreatePostRequest struct {
	CategoryID uint   `json:"categoryId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type CreateReplyRequest struct {
	Content string `json:"content"`
}

func validRoleTier(role string) bool {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin:
		return true
	}
	return false
}

func Category() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(reqData.Name) > 100 {
			errors["name"] = "Name must not exceed 100 characters!"
		}

		for field, role := range map[string]*string{
			"viewRole":   reqData.ViewRole,
			"createRole": reqData.CreateRole,
			"replyRole":  reqData.ReplyRole,
		} {
			if role != nil && !validRoleTier(*role) {
				errors[field] = "Invalid role! Allowed: user, moderator, admin"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

func Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReorderRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Order) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"order": "Order is required!"})
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreatePostRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CategoryID == 0 {
			errors["categoryId"] = "Category ID is required!"
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}

		reqData.Content = strings.TrimSpace(reqData.Content)
		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreatePost", reqData)
		return c.Next()
	}
}

func UpdatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePostRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil {
			*reqData.Title = strings.TrimSpace(*reqData.Title)
			if *reqData.Title == "" {
				errors["title"] = "Title must not be empty!"
			}
		}
		if reqData.Content != nil {
			*reqData.Content = strings.TrimSpace(*reqData.Content)
			if *reqData.Content == "" {
				errors["content"] = "Content must not be empty!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdatePost", reqData)
		return c.Next()
	}
}

func CreateReply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateReplyRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Content = strings.TrimSpace(reqData.Content)
		if reqData.Content == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"content": "Content is required!"})
		}

		c.Locals("validatedCreateReply", reqData)
		return c.Next()
	}
}
