package controllers

import (
	"math"
	"time"

	"learnify/database"
	"learnify/middleware"
	"learnify/models"
	courseModels "learnify/models/course"
	"learnify/utils"

	"github.com/gofiber/fiber/v2"
)

// CompleteSubModule marks a sub-module completed for the caller's
// enrollment and recomputes the progress percentage. The id must belong
// to the addressed module; re-completing the same sub-module is a no-op,
// not an error.
func CompleteSubModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	subModuleID := c.Params("subModuleId")

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	known := false
	for _, sub := range module.SubModules {
		if sub.ID == subModuleID {
			known = true
			break
		}
	}
	if !known {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Sub-module not found!", nil)
	}

	tx := database.Database.Db.Begin()

	var enrollment courseModels.Enrollment
	if err := tx.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, module.CourseID, false).
		First(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	enrollment.CompletedSubModules = addToSet(enrollment.CompletedSubModules, subModuleID)

	var modules []courseModels.Module
	if err := tx.Where("course_id = ? AND is_deleted = ?", module.CourseID, false).Find(&modules).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	enrollment.Progress = courseProgress(modules, enrollment.CompletedSubModules)
	enrollment.Status = courseModels.DeriveStatus(enrollment.Progress)
	enrollment.LastAccessed = time.Now()

	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}
	tx.Commit()

	if enrollment.Status == courseModels.StatusCompleted {
		notifyCourseCompleted(userID, module.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub-module completed!", fiber.Map{
		"progress":            enrollment.Progress,
		"completedSubModules": enrollment.CompletedSubModules,
	})
}

// quizAnswerResult is the per-question breakdown returned to the client
type quizAnswerResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation,omitempty"`
	Points        int    `json:"points"`
	MaxPoints     int    `json:"maxPoints"`
}

// SubmitQuiz scores a quiz attempt against the module's quiz. The attempt
// is always recorded on the enrollment (pass or fail); a pass additionally
// marks the module completed. Quiz passes never feed the sub-module
// progress percentage; the two completion tracks are independent.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedQuizSubmit").(*struct {
		Answers []string `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}
	if module.Quiz == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	score, maxScore, results := scoreQuiz(module.Quiz, reqData.Answers)

	percentage := 0
	if maxScore > 0 {
		percentage = roundPercent(score, maxScore)
	}
	isPassed := percentage >= module.Quiz.PassingScore

	// Record the attempt when the caller has an enrollment; an unenrolled
	// preview is scored but leaves no trace.
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, module.CourseID, false).
		First(&enrollment).Error; err == nil {
		enrollment.QuizResults = append(enrollment.QuizResults, courseModels.QuizResult{
			ModuleID:    module.ID,
			Score:       percentage,
			IsPassed:    isPassed,
			CompletedAt: time.Now(),
		})
		if isPassed {
			enrollment.CompletedModules = addToSet(enrollment.CompletedModules, module.ID)
		}
		enrollment.LastAccessed = time.Now()
		database.Database.Db.Save(&enrollment)
	}

	feedback := "Keep studying the material and retake the quiz."
	if isPassed {
		feedback = "Congratulations! You passed this quiz."
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"score":        score,
		"maxScore":     maxScore,
		"percentage":   percentage,
		"isPassed":     isPassed,
		"passingScore": module.Quiz.PassingScore,
		"results":      results,
		"feedback":     feedback,
	})
}

// scoreQuiz grades answers (indexed by question) by exact text match
// against each question's correct option. A question with no option
// marked correct cannot be answered and scores zero; authoring validation
// rejects such quizzes up front.
func scoreQuiz(quiz *courseModels.Quiz, answers []string) (score, maxScore int, results []quizAnswerResult) {
	results = make([]quizAnswerResult, 0, len(quiz.Questions))

	for i, question := range quiz.Questions {
		maxScore += question.Points

		userAnswer := ""
		if i < len(answers) {
			userAnswer = answers[i]
		}

		correctText := ""
		hasCorrect := false
		for _, opt := range question.Options {
			if opt.IsCorrect {
				correctText = opt.Text
				hasCorrect = true
				break
			}
		}

		isCorrect := hasCorrect && userAnswer == correctText
		points := 0
		if isCorrect {
			points = question.Points
			score += points
		}

		results = append(results, quizAnswerResult{
			Question:      question.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: correctText,
			IsCorrect:     isCorrect,
			Explanation:   question.Explanation,
			Points:        points,
			MaxPoints:     question.Points,
		})
	}
	return score, maxScore, results
}

// courseProgress computes the completion percentage from the completed
// sub-module id set and the course's modules. Ids that no longer belong
// to any module (deleted content) are filtered out at read time so stale
// entries never inflate the count.
func courseProgress(modules []courseModels.Module, completed []string) int {
	valid := make(map[string]bool)
	total := 0
	for _, mod := range modules {
		total += len(mod.SubModules)
		for _, sub := range mod.SubModules {
			valid[sub.ID] = true
		}
	}
	if total == 0 {
		return 0
	}

	completedCount := 0
	for _, id := range completed {
		if valid[id] {
			completedCount++
		}
	}
	return roundPercent(completedCount, total)
}

// roundPercent returns round-half-up of completed/total as a percentage
func roundPercent(completed, total int) int {
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// addToSet appends v only when absent; the JSON-array columns are sets
func addToSet[T comparable](set []T, v T) []T {
	for _, existing := range set {
		if existing == v {
			return set
		}
	}
	return append(set, v)
}

// notifyCourseCompleted sends the congratulation mail, best effort
func notifyCourseCompleted(userID, courseID uint) {
	var user models.User
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return
	}
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return
	}
	go utils.SendCourseCompletedEmail(user.Name, user.Email, course.Title)
}
