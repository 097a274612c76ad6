package authRoutes

import (
	authController "learnify/controllers/auth"
	"learnify/middleware"
	authValidator "learnify/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the authentication routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidator.Register(), authController.Register)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
}
