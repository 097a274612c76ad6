package controllers

import (
	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	courseModels "learnify/models/course"
	courseValidator "learnify/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetModulesByCourse returns a course's modules in order
func GetModulesByCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var modules []courseModels.Module
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

// GetModuleByID returns a module with a course summary
func GetModuleByID(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var course courseModels.Course
	database.Database.Db.Where("id = ?", module.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", fiber.Map{
		"module": module,
		"course": fiber.Map{
			"id":      course.ID,
			"title":   course.Title,
			"subject": course.Subject,
		},
	})
}

// CreateModule inserts a module at the requested order. Siblings at or
// above the requested order are shifted up in one bulk update so orders
// stay a dense 1..N sequence; without a requested order the module is
// appended at N+1.
func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*courseValidator.ModuleCreateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.Course, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.Module{
		CourseID:           reqData.Course,
		Title:              reqData.Title,
		Description:        reqData.Description,
		Content:            reqData.Content,
		Duration:           reqData.Duration,
		SubModules:         prepareSubModules(reqData.SubModules),
		Quiz:               normalizeQuiz(reqData.Quiz),
		SupportMaterials:   reqData.SupportMaterials,
		LearningObjectives: reqData.LearningObjectives,
		Prerequisites:      reqData.Prerequisites,
	}
	if module.Duration == "" {
		module.Duration = "30 menit"
	}

	tx := database.Database.Db.Begin()

	var count int64
	tx.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", reqData.Course, false).
		Count(&count)

	order := reqData.Order
	if order <= 0 || order > int(count)+1 {
		order = int(count) + 1
	}
	if order <= int(count) {
		// Occupied slot: shift every sibling at or above it up by one
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ? AND order_index >= ?", reqData.Course, false, order).
			Update("order_index", gorm.Expr("order_index + 1")).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
		}
	}
	module.OrderIndex = order

	if err := tx.Create(&module).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	if err := recountModules(tx, reqData.Course); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule partially updates a module; an order change shifts the
// siblings between the old and new position by one and keeps the
// sequence dense.
func UpdateModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.ModuleUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.Content != "" {
		module.Content = reqData.Content
	}
	if reqData.Duration != "" {
		module.Duration = reqData.Duration
	}
	if reqData.SubModules != nil {
		module.SubModules = prepareSubModules(reqData.SubModules)
	}
	if reqData.Quiz != nil {
		module.Quiz = normalizeQuiz(reqData.Quiz)
	}
	if reqData.SupportMaterials != nil {
		module.SupportMaterials = reqData.SupportMaterials
	}
	if reqData.LearningObjectives != nil {
		module.LearningObjectives = reqData.LearningObjectives
	}

	tx := database.Database.Db.Begin()

	if reqData.Order != nil && *reqData.Order != module.OrderIndex {
		var count int64
		tx.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ?", module.CourseID, false).
			Count(&count)

		newOrder := *reqData.Order
		if newOrder < 1 {
			newOrder = 1
		}
		if newOrder > int(count) {
			newOrder = int(count)
		}

		oldOrder := module.OrderIndex
		if newOrder > oldOrder {
			// Moving down: pull the block in between up by one
			if err := tx.Model(&courseModels.Module{}).
				Where("course_id = ? AND is_deleted = ? AND order_index > ? AND order_index <= ?",
					module.CourseID, false, oldOrder, newOrder).
				Update("order_index", gorm.Expr("order_index - 1")).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
			}
		} else if newOrder < oldOrder {
			// Moving up: push the block in between down by one
			if err := tx.Model(&courseModels.Module{}).
				Where("course_id = ? AND is_deleted = ? AND order_index >= ? AND order_index < ?",
					module.CourseID, false, newOrder, oldOrder).
				Update("order_index", gorm.Expr("order_index + 1")).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
			}
		}
		module.OrderIndex = newOrder
	}

	if err := tx.Save(&module).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft deletes a module, cascades to its materials, compacts
// the remaining sibling orders and recomputes the course's module count.
func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	tx := database.Database.Db.Begin()

	module.IsDeleted = true
	if err := tx.Save(&module).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if err := tx.Model(&models.Material{}).
		Where("module_id = ? AND is_deleted = ?", module.ID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if err := tx.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ? AND order_index > ?", module.CourseID, false, module.OrderIndex).
		Update("order_index", gorm.Expr("order_index - 1")).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if err := recountModules(tx, module.CourseID); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// recountModules recomputes the course's totalModules from the module
// count. Always a full recount, never an increment, so drift self-heals.
func recountModules(tx *gorm.DB, courseID uint) error {
	var count int64
	if err := tx.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&courseModels.Course{}).
		Where("id = ?", courseID).
		Update("total_modules", count).Error
}

// prepareSubModules assigns ids and fills defaults on embedded sub-modules
func prepareSubModules(subs []courseModels.SubModule) []courseModels.SubModule {
	for i := range subs {
		if subs[i].ID == "" {
			subs[i].ID = uuid.NewString()
		}
		if subs[i].Duration == "" {
			subs[i].Duration = "10 menit"
		}
		if subs[i].OrderIndex == 0 {
			subs[i].OrderIndex = i + 1
		}
	}
	return subs
}

// normalizeQuiz fills quiz defaults and recomputes its total points
func normalizeQuiz(quiz *courseModels.Quiz) *courseModels.Quiz {
	if quiz == nil {
		return nil
	}
	if quiz.Title == "" {
		quiz.Title = "Kuis Akhir"
	}
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = 30
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}
	total := 0
	for i := range quiz.Questions {
		if quiz.Questions[i].Points == 0 {
			quiz.Questions[i].Points = 10
		}
		total += quiz.Questions[i].Points
	}
	quiz.TotalPoints = total
	return quiz
}
