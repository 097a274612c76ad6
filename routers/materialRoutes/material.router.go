package materialRoutes

import (
	materialController "learnify/controllers/material"
	"learnify/middleware"
	materialValidator "learnify/validators/material"

	"github.com/gofiber/fiber/v2"
)

// SetupMaterialRoutes sets up the study material routes
func SetupMaterialRoutes(app *fiber.App) {
	materialGroup := app.Group("/api/materials")

	materialGroup.Get("/", middleware.JWTMiddleware, materialController.GetMaterials)
	materialGroup.Get("/module/:moduleId", middleware.JWTMiddleware, materialValidator.ModuleID(), materialController.GetMaterialsByModule)
	materialGroup.Get("/:id", middleware.JWTMiddleware, materialValidator.MaterialID(), materialController.GetMaterialByID)

	materialGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnly, materialValidator.CreateMaterial(), materialController.CreateMaterial)
}
