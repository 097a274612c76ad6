package chat

import (
	"encoding/json"
	"log"
	"math/rand"
	"strings"
	"time"

	"learnify/database"
	"learnify/middleware"
	"learnify/models"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type wsFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type messagePayload struct {
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context"`
}

// UpgradeGate authenticates the WebSocket handshake. The token comes from
// the `token` query parameter or the Authorization header; a bad token
// refuses the upgrade with 401.
func UpgradeGate(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Query("token")
	if token == "" {
		token = c.Get("Authorization")
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}
	}
	if token == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
	}

	userID, err := middleware.ParseJWT(token)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	c.Locals("userId", user.ID)
	c.Locals("userName", user.Name)
	return c.Next()
}

func send(conn *websocket.Conn, event string, data interface{}) error {
	return conn.WriteJSON(fiber.Map{"event": event, "data": data})
}

// NewHandler builds the per-connection chat loop around the given rule
// table. Replies go only to the sending connection; connections share
// nothing.
func NewHandler(table RuleTable) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userId").(uint)
		userName, _ := conn.Locals("userName").(string)

		log.Printf("chat: user %d connected", userID)

		send(conn, "ai:connected", fiber.Map{
			"message":   "Terhubung ke AI Assistant",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				log.Printf("chat: user %d disconnected", userID)
				return
			}

			var frame wsFrame
			if err := json.Unmarshal(raw, &frame); err != nil {
				send(conn, "ai:error", fiber.Map{"error": "Invalid message frame!"})
				continue
			}

			switch frame.Event {
			case "ping":
				send(conn, "pong", fiber.Map{
					"pong":      true,
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})

			case "ai:message":
				var payload messagePayload
				if frame.Data != nil {
					if err := json.Unmarshal(frame.Data, &payload); err != nil {
						send(conn, "ai:error", fiber.Map{"error": "Invalid message frame!"})
						continue
					}
				}
				handleMessage(conn, table, userName, payload)

			default:
				send(conn, "ai:error", fiber.Map{"error": "Unknown event!"})
			}
		}
	})
}

func handleMessage(conn *websocket.Conn, table RuleTable, userName string, payload messagePayload) {
	if strings.TrimSpace(payload.Message) == "" {
		send(conn, "ai:error", fiber.Map{"error": "Pesan tidak boleh kosong"})
		return
	}

	send(conn, "ai:typing", fiber.Map{"isTyping": true})

	// Typing delay between 200ms and 800ms
	time.Sleep(time.Duration(200+rand.Intn(601)) * time.Millisecond)

	reply, err := LLMReply(payload.Message)
	if err != nil {
		reply = table.Reply(payload.Message, userName)
	}

	send(conn, "ai:response", fiber.Map{
		"message":   reply,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"context":   payload.Context,
	})
	send(conn, "ai:typing", fiber.Map{"isTyping": false})
}
