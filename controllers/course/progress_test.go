package controllers_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"learnify/database"
	"learnify/models"
	courseModels "learnify/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// seedModules creates three modules with ten sub-modules total (4+3+3)
func seedModules(t *testing.T, courseID uint) []courseModels.Module {
	t.Helper()

	sizes := []int{4, 3, 3}
	modules := make([]courseModels.Module, 0, len(sizes))
	for i, size := range sizes {
		subs := make(datatypes.JSONSlice[courseModels.SubModule], 0, size)
		for j := 0; j < size; j++ {
			subs = append(subs, courseModels.SubModule{
				ID:         fmt.Sprintf("sub-%d-%d", i+1, j+1),
				Title:      fmt.Sprintf("Sub %d.%d", i+1, j+1),
				OrderIndex: j + 1,
			})
		}
		module := courseModels.Module{
			CourseID:   courseID,
			Title:      fmt.Sprintf("Module %d", i+1),
			OrderIndex: i + 1,
			SubModules: subs,
		}
		require.NoError(t, database.Database.Db.Create(&module).Error)
		modules = append(modules, module)
	}
	return modules
}

func TestCompleteSubModuleUpdatesProgress(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Matematika Dasar")
	modules := seedModules(t, course.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	// 3 of 10 sub-modules completed
	completions := []struct {
		module courseModels.Module
		subID  string
	}{
		{modules[0], "sub-1-1"},
		{modules[0], "sub-1-2"},
		{modules[1], "sub-2-1"},
	}
	for _, step := range completions {
		code, _ := doRequest(t, app, "POST",
			fmt.Sprintf("/api/modules/%d/submodules/%s/complete", step.module.ID, step.subID), token, nil)
		require.Equal(t, 200, code)
	}

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/api/courses/%d/enrollment", course.ID), token, nil)
	require.Equal(t, 200, code)

	var enrollment courseModels.Enrollment
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, 30, enrollment.Progress)
	assert.Equal(t, courseModels.StatusInProgress, enrollment.Status)
}

func TestCompleteSubModuleIsIdempotent(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Fisika Dasar")
	modules := seedModules(t, course.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	path := fmt.Sprintf("/api/modules/%d/submodules/sub-1-1/complete", modules[0].ID)
	for i := 0; i < 3; i++ {
		code, env := doRequest(t, app, "POST", path, token, nil)
		require.Equal(t, 200, code)

		var result struct {
			Progress            int      `json:"progress"`
			CompletedSubModules []string `json:"completedSubModules"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, 10, result.Progress)
		assert.Len(t, result.CompletedSubModules, 1)
	}
}

func TestCompleteSubModuleRequiresEnrollment(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Kimia Dasar")
	modules := seedModules(t, course.ID)

	code, env := doRequest(t, app, "POST",
		fmt.Sprintf("/api/modules/%d/submodules/sub-1-1/complete", modules[0].ID), token, nil)
	assert.Equal(t, 404, code)
	assert.Equal(t, "You are not enrolled in this course!", env.Message)
}

func TestCompleteSubModuleRejectsUnknownID(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Kimia Lanjutan")
	modules := seedModules(t, course.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	// An id the module does not contain is rejected, not stored
	code, env := doRequest(t, app, "POST",
		fmt.Sprintf("/api/modules/%d/submodules/no-such-sub/complete", modules[0].ID), token, nil)
	assert.Equal(t, 404, code)
	assert.Equal(t, "Sub-module not found!", env.Message)

	// A sub-module of a sibling module is rejected through the wrong URL
	code, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/api/modules/%d/submodules/sub-2-1/complete", modules[0].ID), token, nil)
	assert.Equal(t, 404, code)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).
		First(&enrollment).Error)
	assert.Empty(t, enrollment.CompletedSubModules)
	assert.Zero(t, enrollment.Progress)
}

func TestCompleteAllSubModulesFinishesCourse(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Biologi Dasar")
	modules := seedModules(t, course.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	for _, module := range modules {
		for _, sub := range module.SubModules {
			code, _ := doRequest(t, app, "POST",
				fmt.Sprintf("/api/modules/%d/submodules/%s/complete", module.ID, sub.ID), token, nil)
			require.Equal(t, 200, code)
		}
	}

	code, env := doRequest(t, app, "GET", fmt.Sprintf("/api/courses/%d/enrollment", course.ID), token, nil)
	require.Equal(t, 200, code)

	var enrollment courseModels.Enrollment
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, courseModels.StatusCompleted, enrollment.Status)
}

func quizModule(t *testing.T, courseID uint) courseModels.Module {
	t.Helper()

	module := courseModels.Module{
		CourseID:   courseID,
		Title:      "Quiz module",
		OrderIndex: 1,
		Quiz: &courseModels.Quiz{
			Title:        "Kuis Akhir",
			PassingScore: 70,
			TotalPoints:  20,
			Questions: []courseModels.QuizQuestion{
				{
					Question: "2 + 2 = ?",
					Points:   10,
					Options: []courseModels.QuizOption{
						{Text: "3"},
						{Text: "4", IsCorrect: true},
					},
				},
				{
					Question: "Ibukota Indonesia?",
					Points:   10,
					Options: []courseModels.QuizOption{
						{Text: "Jakarta", IsCorrect: true},
						{Text: "Bandung"},
					},
				},
			},
		},
	}
	require.NoError(t, database.Database.Db.Create(&module).Error)
	return module
}

func TestSubmitQuizPassRecordsResultAndCompletesModule(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Aljabar")
	module := quizModule(t, course.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	code, env := doRequest(t, app, "POST", fmt.Sprintf("/api/modules/%d/quiz/submit", module.ID), token,
		map[string]interface{}{"answers": []string{"4", "Jakarta"}})
	require.Equal(t, 200, code)

	var result struct {
		Score      int  `json:"score"`
		MaxScore   int  `json:"maxScore"`
		Percentage int  `json:"percentage"`
		IsPassed   bool `json:"isPassed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 20, result.Score)
	assert.Equal(t, 20, result.MaxScore)
	assert.Equal(t, 100, result.Percentage)
	assert.True(t, result.IsPassed)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		First(&enrollment).Error)
	require.Len(t, enrollment.QuizResults, 1)
	assert.True(t, enrollment.QuizResults[0].IsPassed)
	assert.Contains(t, []uint(enrollment.CompletedModules), module.ID)

	// Quiz completion never feeds the sub-module percentage
	assert.Equal(t, 0, enrollment.Progress)
}

func TestSubmitQuizFailRecordsAttemptOnly(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Geometri")
	module := quizModule(t, course.ID)

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	code, env := doRequest(t, app, "POST", fmt.Sprintf("/api/modules/%d/quiz/submit", module.ID), token,
		map[string]interface{}{"answers": []string{"3", "Bandung"}})
	require.Equal(t, 200, code)

	var result struct {
		Percentage int  `json:"percentage"`
		IsPassed   bool `json:"isPassed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 0, result.Percentage)
	assert.False(t, result.IsPassed)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		First(&enrollment).Error)
	require.Len(t, enrollment.QuizResults, 1)
	assert.False(t, enrollment.QuizResults[0].IsPassed)
	assert.Empty(t, enrollment.CompletedModules)
}

func TestSubmitQuizWithoutEnrollmentScoresButLeavesNoTrace(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Statistika")
	module := quizModule(t, course.ID)

	code, env := doRequest(t, app, "POST", fmt.Sprintf("/api/modules/%d/quiz/submit", module.ID), token,
		map[string]interface{}{"answers": []string{"4", "Jakarta"}})
	require.Equal(t, 200, code)

	var result struct {
		IsPassed bool `json:"isPassed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.IsPassed)

	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitQuizOnModuleWithoutQuizIs404(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Trigonometri")
	modules := seedModules(t, course.ID)

	code, env := doRequest(t, app, "POST", fmt.Sprintf("/api/modules/%d/quiz/submit", modules[0].ID), token,
		map[string]interface{}{"answers": []string{}})
	assert.Equal(t, 404, code)
	assert.Equal(t, "Quiz not found!", env.Message)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, models.RoleStudent)
	course := createCourse(t, "Pemrograman Web")

	code, _ := doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	require.Equal(t, 201, code)

	code, _ = doRequest(t, app, "POST", fmt.Sprintf("/api/courses/%d/enroll", course.ID), token, nil)
	assert.Equal(t, 409, code)

	var course2 courseModels.Course
	require.NoError(t, dbFirst(&course2, course.ID))
	assert.Equal(t, 1, course2.EnrolledCount)
}
