package controllers

import (
	"testing"

	courseModels "learnify/models/course"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func modulesWithSubs(sizes ...int) []courseModels.Module {
	modules := make([]courseModels.Module, 0, len(sizes))
	id := 0
	for i, size := range sizes {
		subs := make(datatypes.JSONSlice[courseModels.SubModule], 0, size)
		for j := 0; j < size; j++ {
			id++
			subs = append(subs, courseModels.SubModule{ID: string(rune('a' + id))})
		}
		modules = append(modules, courseModels.Module{
			OrderIndex: i + 1,
			SubModules: subs,
		})
	}
	return modules
}

func subIDs(modules []courseModels.Module) []string {
	var ids []string
	for _, m := range modules {
		for _, s := range m.SubModules {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestCourseProgressPercentages(t *testing.T) {
	modules := modulesWithSubs(4, 3, 3)
	ids := subIDs(modules)

	assert.Equal(t, 0, courseProgress(modules, nil))
	assert.Equal(t, 30, courseProgress(modules, ids[:3]))
	assert.Equal(t, 100, courseProgress(modules, ids))
}

func TestCourseProgressRoundsHalfUp(t *testing.T) {
	// 1/8 = 12.5 rounds to 13
	modules := modulesWithSubs(8)
	ids := subIDs(modules)
	assert.Equal(t, 13, courseProgress(modules, ids[:1]))

	// 1/3 = 33.3 down, 2/3 = 66.7 up
	modules = modulesWithSubs(3)
	ids = subIDs(modules)
	assert.Equal(t, 33, courseProgress(modules, ids[:1]))
	assert.Equal(t, 67, courseProgress(modules, ids[:2]))
}

func TestCourseProgressIgnoresStaleIDs(t *testing.T) {
	modules := modulesWithSubs(2, 2)
	ids := subIDs(modules)

	completed := append([]string{"gone-1", "gone-2"}, ids[:2]...)
	assert.Equal(t, 50, courseProgress(modules, completed))
}

func TestCourseProgressEmptyCourse(t *testing.T) {
	assert.Equal(t, 0, courseProgress(nil, []string{"anything"}))
	assert.Equal(t, 0, courseProgress(modulesWithSubs(0, 0), nil))
}

func TestScoreQuizExactMatch(t *testing.T) {
	quiz := &courseModels.Quiz{
		Questions: []courseModels.QuizQuestion{
			{Question: "Q1", Points: 10, Options: []courseModels.QuizOption{
				{Text: "right", IsCorrect: true}, {Text: "wrong"},
			}},
			{Question: "Q2", Points: 5, Options: []courseModels.QuizOption{
				{Text: "wrong"}, {Text: "also right", IsCorrect: true},
			}},
		},
	}

	score, maxScore, results := scoreQuiz(quiz, []string{"right", "nope"})
	assert.Equal(t, 10, score)
	assert.Equal(t, 15, maxScore)
	assert.Len(t, results, 2)
	assert.True(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.Equal(t, "also right", results[1].CorrectAnswer)
}

func TestScoreQuizMissingAnswersScoreZero(t *testing.T) {
	quiz := &courseModels.Quiz{
		Questions: []courseModels.QuizQuestion{
			{Question: "Q1", Points: 10, Options: []courseModels.QuizOption{
				{Text: "a", IsCorrect: true},
			}},
			{Question: "Q2", Points: 10, Options: []courseModels.QuizOption{
				{Text: "b", IsCorrect: true},
			}},
		},
	}

	score, maxScore, results := scoreQuiz(quiz, []string{"a"})
	assert.Equal(t, 10, score)
	assert.Equal(t, 20, maxScore)
	assert.False(t, results[1].IsCorrect)
	assert.Equal(t, "", results[1].UserAnswer)
}

func TestScoreQuizQuestionWithoutCorrectOption(t *testing.T) {
	quiz := &courseModels.Quiz{
		Questions: []courseModels.QuizQuestion{
			{Question: "Q1", Points: 10, Options: []courseModels.QuizOption{
				{Text: "a"}, {Text: "b"},
			}},
		},
	}

	score, maxScore, results := scoreQuiz(quiz, []string{"a"})
	assert.Equal(t, 0, score)
	assert.Equal(t, 10, maxScore)
	assert.False(t, results[0].IsCorrect)
}

func TestAddToSetDeduplicates(t *testing.T) {
	set := []string{"a", "b"}
	set = addToSet(set, "b")
	set = addToSet(set, "c")
	set = addToSet(set, "c")
	assert.Equal(t, []string{"a", "b", "c"}, set)

	ids := []uint{1}
	ids = addToSet(ids, 1)
	ids = addToSet(ids, 2)
	assert.Equal(t, []uint{1, 2}, ids)
}
