package courseValidator

import (
	"strconv"
	"strings"

	"learnify/middleware"
	courseModels "learnify/models/course"

	"github.com/gofiber/fiber/v2"
)

func validLevel(level string) bool {
	switch level {
	case "", courseModels.LevelBeginner, courseModels.LevelIntermediate, courseModels.LevelAdvanced:
		return true
	}
	return false
}

// paramID parses a positive integer route parameter and stores it in Locals
func paramID(param, local, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
		}
		c.Locals(local, id)
		return c.Next()
	}
}

// CourseID validator middleware
func CourseID() fiber.Handler {
	return paramID("id", "courseID", "Invalid course id!")
}

// ModuleID validator middleware
func ModuleID() fiber.Handler {
	return paramID("id", "moduleID", "Invalid module id!")
}

// CourseParamID validates the :courseId parameter
func CourseParamID() fiber.Handler {
	return paramID("courseId", "courseID", "Invalid course id!")
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string  `json:"title"`
			Description   string  `json:"description"`
			Subject       string  `json:"subject"`
			Grade         string  `json:"grade"`
			Level         string  `json:"level"`
			TotalDuration string  `json:"totalDuration"`
			Rating        float64 `json:"rating"`
			IsPopular     bool    `json:"isPopular"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}
		if strings.TrimSpace(reqData.Subject) == "" {
			errors["subject"] = "Subject is required!"
		}
		if !validLevel(reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}
		if reqData.Rating < 0 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 0 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string   `json:"title"`
			Description   string   `json:"description"`
			Subject       string   `json:"subject"`
			Grade         string   `json:"grade"`
			Level         string   `json:"level"`
			TotalDuration string   `json:"totalDuration"`
			Rating        *float64 `json:"rating"`
			IsPopular     *bool    `json:"isPopular"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !validLevel(reqData.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advanced!"
		}
		if reqData.Rating != nil && (*reqData.Rating < 0 || *reqData.Rating > 5) {
			errors["rating"] = "Rating must be between 0 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// Progress validator middleware
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress int   `json:"progress"`
			ModuleID *uint `json:"moduleId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Progress < 0 || reqData.Progress > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"progress": "Progress must be between 0 and 100!",
			})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// QuizSubmit validator middleware
func QuizSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "Answers are required!",
			})
		}

		c.Locals("validatedQuizSubmit", reqData)
		return c.Next()
	}
}
