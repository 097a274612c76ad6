package main

import (
	"log"

	"learnify/config"
	"learnify/database"
	authRoutes "learnify/routers/authRoutes"
	chatRoutes "learnify/routers/chatRoutes"
	courseRoutes "learnify/routers/courseRoutes"
	discussionRoutes "learnify/routers/discussionRoutes"
	materialRoutes "learnify/routers/materialRoutes"
	moduleRoutes "learnify/routers/moduleRoutes"
	"learnify/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.ClientURL,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,x-auth-token",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Learnify API",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"auth":        "/api/auth",
				"courses":     "/api/courses",
				"modules":     "/api/modules",
				"materials":   "/api/materials",
				"discussions": "/api/discussions",
				"chat":        "/ws/chat",
			},
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbState := "connected"
		sqlDB, err := database.Database.Db.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbState = "disconnected"
		}
		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": dbState,
		})
	})

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	moduleRoutes.SetupModuleRoutes(app)
	materialRoutes.SetupMaterialRoutes(app)
	discussionRoutes.SetupDiscussionRoutes(app)
	chatRoutes.SetupChatRoutes(app)

	utils.StartCounterReconciler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
