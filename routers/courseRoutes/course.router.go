package courseRoutes

import (
	controllers "learnify/controllers/course"
	"learnify/middleware"
	courseValidator "learnify/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the course catalog and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Catalog
	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetCourses)
	courseGroup.Get("/popular", middleware.JWTMiddleware, controllers.GetPopularCourses)
	courseGroup.Get("/user/my-courses", middleware.JWTMiddleware, controllers.GetMyCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.GetCourseByID)
	courseGroup.Get("/:id/modules", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.GetModulesByCourse)

	// Admin management
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnly, courseValidator.CreateCourse(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, courseValidator.CourseID(), courseValidator.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, courseValidator.CourseID(), controllers.DeleteCourse)

	// Enrollment and progress
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.EnrollInCourse)
	courseGroup.Get("/:id/enrollment", middleware.JWTMiddleware, courseValidator.CourseID(), controllers.GetEnrollment)
	courseGroup.Put("/:id/progress", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Progress(), controllers.UpdateProgress)
}
