package middleware

import (
	"learnify/database"
	"learnify/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminOnly ensures the authenticated user holds the admin role before the
// handler runs. Must be chained after JWTMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Unauthorized: User ID not found",
			"data":    nil,
		})
	}

	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User not found!",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  false,
			"message": "Server error while checking permissions!",
			"data":    nil,
		})
	}

	if user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "Access denied! Admin only.",
			"data":    nil,
		})
	}

	return c.Next()
}
