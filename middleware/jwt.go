package middleware

import (
	"fmt"
	"strings"
	"time"

	"learnify/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"iat":    time.Now().Unix(),                         // issued at
		"exp":    time.Now().Add(7 * 24 * time.Hour).Unix(), // expiry 7d
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// ParseJWT validates a raw token string and returns the user id it carries.
// Shared by the HTTP middleware and the WebSocket handshake.
func ParseJWT(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return 0, fmt.Errorf("invalid token payload")
	}

	userID, ok := claims["userId"].(float64) // JWT claims are stored as float64
	if !ok {
		return 0, fmt.Errorf("invalid token payload")
	}
	return uint(userID), nil
}

// tokenFromRequest extracts the bearer token from the Authorization header
// or the legacy x-auth-token header the original clients still send.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return c.Get("x-auth-token")
}

// JWTMiddleware is a middleware to check for valid JWT token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Missing or invalid Authorization header",
		})
	}

	userID, err := ParseJWT(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid or expired token",
		})
	}

	c.Locals("userId", userID)
	return c.Next()
}

// OptionalJWTMiddleware sets userId when a valid token is present but never
// rejects the request. Public discussion reads use it to attach the
// caller's own vote.
func OptionalJWTMiddleware(c *fiber.Ctx) error {
	if tokenString := tokenFromRequest(c); tokenString != "" {
		if userID, err := ParseJWT(tokenString); err == nil {
			c.Locals("userId", userID)
		}
	}
	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
