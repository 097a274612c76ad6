package courseValidator

import (
	"fmt"
	"strings"

	"learnify/middleware"
	courseModels "learnify/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ModuleCreateRequest is the payload accepted by the module create endpoint.
type ModuleCreateRequest struct {
	Course             uint                           `json:"course" validate:"required"`
	Title              string                         `json:"title" validate:"required"`
	Description        string                         `json:"description"`
	Content            string                         `json:"content"`
	Duration           string                         `json:"duration"`
	Order              int                            `json:"order"`
	SubModules         []courseModels.SubModule       `json:"subModules"`
	Quiz               *courseModels.Quiz             `json:"quiz"`
	SupportMaterials   []courseModels.SupportMaterial `json:"supportMaterials"`
	LearningObjectives []string                       `json:"learningObjectives"`
	Prerequisites      []uint                         `json:"prerequisites"`
}

// ModuleUpdateRequest is the partial-update payload; nil/zero fields are
// left untouched and Order moves the module when set.
type ModuleUpdateRequest struct {
	Title              string                         `json:"title"`
	Description        string                         `json:"description"`
	Content            string                         `json:"content"`
	Duration           string                         `json:"duration"`
	Order              *int                           `json:"order"`
	SubModules         []courseModels.SubModule       `json:"subModules"`
	Quiz               *courseModels.Quiz             `json:"quiz"`
	SupportMaterials   []courseModels.SupportMaterial `json:"supportMaterials"`
	LearningObjectives []string                       `json:"learningObjectives"`
}

func validSubModuleType(t string) bool {
	switch t {
	case "", courseModels.SubModuleVideo, courseModels.SubModuleArticle,
		courseModels.SubModuleReading, courseModels.SubModuleExercise,
		courseModels.SubModuleQuiz:
		return true
	}
	return false
}

// checkSubModules validates the embedded sub-module list
func checkSubModules(subs []courseModels.SubModule, errors map[string]string) {
	for i, sub := range subs {
		if strings.TrimSpace(sub.Title) == "" {
			errors[fmt.Sprintf("subModules[%d].title", i)] = "Sub-module title is required!"
		}
		if !validSubModuleType(sub.Type) {
			errors[fmt.Sprintf("subModules[%d].type", i)] = "Invalid sub-module type!"
		}
	}
}

// checkQuiz enforces the quiz authoring rules: every question needs at
// least two options with exactly one marked correct, and positive points.
func checkQuiz(quiz *courseModels.Quiz, errors map[string]string) {
	if quiz == nil {
		return
	}
	if len(quiz.Questions) == 0 {
		errors["quiz.questions"] = "A quiz needs at least one question!"
		return
	}
	for i, q := range quiz.Questions {
		key := fmt.Sprintf("quiz.questions[%d]", i)
		if strings.TrimSpace(q.Question) == "" {
			errors[key+".question"] = "Question text is required!"
		}
		if len(q.Options) < 2 {
			errors[key+".options"] = "A question needs at least two options!"
		}
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			errors[key+".options"] = "Exactly one option must be marked correct!"
		}
		if q.Points < 0 {
			errors[key+".points"] = "Points cannot be negative!"
		}
	}
}

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModuleCreateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Course":
					errors["course"] = "Course id is required!"
				case "Title":
					errors["title"] = "Title is required!"
				}
			}
		}

		checkSubModules(reqData.SubModules, errors)
		checkQuiz(reqData.Quiz, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validator middleware
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModuleUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		checkSubModules(reqData.SubModules, errors)
		checkQuiz(reqData.Quiz, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}
