package materialController

import (
	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	courseModels "learnify/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetMaterials lists study materials, optionally filtered by subject or grade
func GetMaterials(c *fiber.Ctx) error {
	query := database.Database.Db.Where("is_deleted = ?", false)

	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if grade := c.Query("grade"); grade != "" {
		query = query.Where("grade = ?", grade)
	}

	var materials []models.Material
	if err := query.Order("created_at desc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}

// GetMaterialsByModule lists the materials attached to one module
func GetMaterialsByModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var materials []models.Material
	if err := database.Database.Db.
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("created_at asc").
		Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}

func GetMaterialByID(c *fiber.Ctx) error {
	materialID := c.Locals("materialID").(int)

	var material models.Material
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Material not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material fetched successfully!", material)
}

// CreateMaterial adds a study material, optionally linked to a course or module
func CreateMaterial(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMaterial").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		Subject     string `json:"subject"`
		Grade       string `json:"grade"`
		CourseID    *uint  `json:"courseId"`
		ModuleID    *uint  `json:"moduleId"`
		Type        string `json:"type"`
		Duration    string `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.CourseID != nil {
		var course courseModels.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
	}
	if reqData.ModuleID != nil {
		var module courseModels.Module
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.ModuleID, false).First(&module).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
	}

	material := models.Material{
		Title:       reqData.Title,
		Description: reqData.Description,
		Content:     reqData.Content,
		Subject:     reqData.Subject,
		Grade:       reqData.Grade,
		CourseID:    reqData.CourseID,
		ModuleID:    reqData.ModuleID,
		Type:        reqData.Type,
		Duration:    reqData.Duration,
	}
	if material.Type == "" {
		material.Type = "article"
	}
	if material.Grade == "" {
		material.Grade = "12"
	}
	if material.Duration == "" {
		material.Duration = "15 menit"
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}
