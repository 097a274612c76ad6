package materialValidator

import (
	"strconv"
	"strings"

	"learnify/middleware"

	"github.com/gofiber/fiber/v2"
)

// MaterialID validator middleware
func MaterialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid material id!", nil)
		}
		c.Locals("materialID", id)
		return c.Next()
	}
}

// ModuleID validator middleware for the by-module listing
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("moduleId"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}
		c.Locals("moduleID", id)
		return c.Next()
	}
}

// CreateMaterial validator middleware
func CreateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Content     string `json:"content"`
			Subject     string `json:"subject"`
			Grade       string `json:"grade"`
			CourseID    *uint  `json:"courseId"`
			ModuleID    *uint  `json:"moduleId"`
			Type        string `json:"type"`
			Duration    string `json:"duration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Subject) == "" {
			errors["subject"] = "Subject is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}
