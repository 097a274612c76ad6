package chatRoutes

import (
	"learnify/chat"

	"github.com/gofiber/fiber/v2"
)

// SetupChatRoutes sets up the chat assistant WebSocket endpoint
func SetupChatRoutes(app *fiber.App) {
	app.Get("/ws/chat", chat.UpgradeGate, chat.NewHandler(chat.DefaultRules()))
}
