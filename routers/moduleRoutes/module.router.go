package moduleRoutes

import (
	controllers "learnify/controllers/course"
	"learnify/middleware"
	courseValidator "learnify/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupModuleRoutes sets up the module, sub-module progress and quiz routes
func SetupModuleRoutes(app *fiber.App) {
	moduleGroup := app.Group("/api/modules")

	moduleGroup.Get("/course/:courseId", middleware.JWTMiddleware, courseValidator.CourseParamID(), controllers.GetModulesByCourse)
	moduleGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.ModuleID(), controllers.GetModuleByID)

	// Admin management
	moduleGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnly, courseValidator.CreateModule(), controllers.CreateModule)
	moduleGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, courseValidator.ModuleID(), courseValidator.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, courseValidator.ModuleID(), controllers.DeleteModule)

	// Learner progress
	moduleGroup.Post("/:id/submodules/:subModuleId/complete", middleware.JWTMiddleware, courseValidator.ModuleID(), controllers.CompleteSubModule)
	moduleGroup.Post("/:id/quiz/submit", middleware.JWTMiddleware, courseValidator.ModuleID(), courseValidator.QuizSubmit(), controllers.SubmitQuiz)
}
