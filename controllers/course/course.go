package controllers

import (
	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	courseModels "learnify/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCourses returns all courses, newest first
func GetCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetPopularCourses returns the popular courses by enrollment
func GetPopularCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("is_popular = ? AND is_deleted = ?", true, false).
		Order("enrolled_count desc").
		Limit(6).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Popular courses fetched successfully!", courses)
}

// GetCourseByID returns a course with its modules and the caller's
// enrollment when one exists
func GetCourseByID(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&modules)

	userID := c.Locals("userId").(uint)

	var enrollment *courseModels.Enrollment
	var existing courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error; err == nil {
		enrollment = &existing
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     course,
		"modules":    modules,
		"enrollment": enrollment,
	})
}

// CreateCourse creates a new course (admin only)
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title         string  `json:"title"`
		Description   string  `json:"description"`
		Subject       string  `json:"subject"`
		Grade         string  `json:"grade"`
		Level         string  `json:"level"`
		TotalDuration string  `json:"totalDuration"`
		Rating        float64 `json:"rating"`
		IsPopular     bool    `json:"isPopular"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Subject:     reqData.Subject,
		Grade:       reqData.Grade,
		Level:       reqData.Level,
		Rating:      reqData.Rating,
		IsPopular:   reqData.IsPopular,
	}
	if course.Grade == "" {
		course.Grade = "12"
	}
	if course.Level == "" {
		course.Level = courseModels.LevelBeginner
	}
	if reqData.TotalDuration != "" {
		course.TotalDuration = reqData.TotalDuration
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse partially updates a course (admin only)
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		Subject       string   `json:"subject"`
		Grade         string   `json:"grade"`
		Level         string   `json:"level"`
		TotalDuration string   `json:"totalDuration"`
		Rating        *float64 `json:"rating"`
		IsPopular     *bool    `json:"isPopular"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Subject != "" {
		course.Subject = reqData.Subject
	}
	if reqData.Grade != "" {
		course.Grade = reqData.Grade
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.TotalDuration != "" {
		course.TotalDuration = reqData.TotalDuration
	}
	if reqData.Rating != nil {
		course.Rating = *reqData.Rating
	}
	if reqData.IsPopular != nil {
		course.IsPopular = *reqData.IsPopular
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft deletes a course and cascades to its modules and
// materials as an explicit cleanup step
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	tx := database.Database.Db.Begin()

	if err := tx.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := tx.Model(&models.Material{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	course.IsDeleted = true
	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
