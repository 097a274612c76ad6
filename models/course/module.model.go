package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sub-module content types
const (
	SubModuleVideo    = "video"
	SubModuleArticle  = "article"
	SubModuleQuiz     = "quiz"
	SubModuleReading  = "reading"
	SubModuleExercise = "exercise"
)

// SupportLink is an extra resource attached to a sub-module
type SupportLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // pdf, video, article, external
}

// SubModule is the smallest addressable content unit inside a module.
// Sub-modules live embedded in the module row as a JSON document and are
// addressed by a server-assigned UUID.
type SubModule struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Type         string        `json:"type"` // video, article, quiz, reading, exercise
	Content      string        `json:"content"`
	Duration     string        `json:"duration"`
	VideoURL     string        `json:"videoUrl,omitempty"`
	ArticleURL   string        `json:"articleUrl,omitempty"`
	SupportLinks []SupportLink `json:"supportLinks,omitempty"`
	OrderIndex   int           `json:"order"`
	// Legacy flag; completion is tracked per enrollment, not here.
	IsCompleted bool `json:"isCompleted"`
}

// QuizOption is one answer choice; exactly one option per question is
// marked correct (enforced at authoring time).
type QuizOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuizQuestion struct {
	Question    string       `json:"question"`
	Options     []QuizOption `json:"options"`
	Explanation string       `json:"explanation,omitempty"`
	Points      int          `json:"points"`
}

// Quiz is the optional end-of-module quiz
type Quiz struct {
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	TimeLimit    int            `json:"timeLimit"` // in minutes
	PassingScore int            `json:"passingScore"`
	Questions    []QuizQuestion `json:"questions"`
	TotalPoints  int            `json:"totalPoints"`
}

// SupportMaterial is a module-level supporting resource
type SupportMaterial struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"` // pdf, video, link, presentation
	URL         string `json:"url"`
	Size        string `json:"size,omitempty"`     // for PDFs
	Duration    string `json:"duration,omitempty"` // for videos
}

// Module represents a section within a course. OrderIndex values are
// unique per course and form a dense 1..N sequence; the module handlers
// keep that invariant on insert, move and delete.
type Module struct {
	gorm.Model
	CourseID           uint                                 `json:"course_id" gorm:"index;not null"`
	Title              string                               `json:"title"`
	Description        string                               `json:"description"`
	Content            string                               `json:"content" gorm:"type:text"`
	Duration           string                               `json:"duration" gorm:"default:'30 menit'"`
	OrderIndex         int                                  `json:"order" gorm:"default:0"` // module order in course, dense from 1
	SubModules         datatypes.JSONSlice[SubModule]       `json:"subModules"`
	Quiz               *Quiz                                `json:"quiz" gorm:"serializer:json"`
	SupportMaterials   datatypes.JSONSlice[SupportMaterial] `json:"supportMaterials"`
	LearningObjectives datatypes.JSONSlice[string]          `json:"learningObjectives"`
	Prerequisites      datatypes.JSONSlice[uint]            `json:"prerequisites"` // module ids
	IsDeleted          bool                                 `gorm:"default:false"`
}
