package authController

import (
	"log"
	"time"

	"learnify/config"
	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	"learnify/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a local account
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:         reqData.Name,
		Email:        reqData.Email,
		Password:     string(hashedPassword),
		Role:         models.RoleStudent,
		AuthProvider: "local",
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	go utils.SendWelcomeEmail(newUser.Name, newUser.Email)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registration successful! Please login.", fiber.Map{
		"id":    newUser.ID,
		"name":  newUser.Name,
		"email": newUser.Email,
	})
}

// Login authenticates a local account and issues a JWT
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid email or password!", nil)
	}

	if user.AuthProvider != "local" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This account uses a different sign-in method!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid email or password!", nil)
	}

	user.LastLogin = time.Now()
	db.Save(&user)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
			"avatar": user.Avatar,
		},
	})
}

// Me returns the authenticated user's profile
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", user)
}
