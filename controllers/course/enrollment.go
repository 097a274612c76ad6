package controllers

import (
	"time"

	"learnify/database"
	"learnify/middleware"
	courseModels "learnify/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the authenticated user in a course. The pair
// (user, course) is unique; a second enroll returns a conflict.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	now := time.Now()
	enrollment := courseModels.Enrollment{
		UserID:       userID,
		CourseID:     uint(courseID),
		Status:       courseModels.StatusNotStarted,
		EnrolledAt:   now,
		LastAccessed: now,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	// Recompute the denormalized counter instead of incrementing it
	var enrolled int64
	tx.Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&enrolled)
	if err := tx.Model(&course).Update("enrolled_count", enrolled).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetMyCourses returns the caller's enrollments with course data
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("last_accessed desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Attach each enrollment's course
	type enrolledCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}
	result := make([]enrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result = append(result, enrolledCourse{Enrollment: e, Course: course})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", result)
}

// GetEnrollment returns the caller's enrollment for one course, or null
func GetEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No enrollment found.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// UpdateProgress writes the progress value directly and optionally marks a
// module completed. Kept for the legacy client flow; sub-module completion
// is the computed path.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress int   `json:"progress"`
		ModuleID *uint `json:"moduleId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.Progress = reqData.Progress
	enrollment.Status = courseModels.DeriveStatus(enrollment.Progress)
	enrollment.LastAccessed = time.Now()

	if reqData.ModuleID != nil {
		enrollment.CompletedModules = addToSet(enrollment.CompletedModules, *reqData.ModuleID)
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if enrollment.Status == courseModels.StatusCompleted {
		notifyCourseCompleted(userID, uint(courseID))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", enrollment)
}
