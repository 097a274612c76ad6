package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment statuses, derived from progress
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// QuizResult is one recorded quiz attempt; the list is append-only and
// keeps failed attempts too.
type QuizResult struct {
	ModuleID    uint      `json:"moduleId"`
	Score       int       `json:"score"` // percentage score
	IsPassed    bool      `json:"isPassed"`
	CompletedAt time.Time `json:"completedAt"`
}

// Enrollment tracks a user's enrollment in a course with progress.
// CompletedModules and CompletedSubModules are sets; dedup is enforced at
// the write boundary, never by convention.
type Enrollment struct {
	gorm.Model
	UserID              uint                            `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID            uint                            `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Progress            int                             `json:"progress" gorm:"default:0"`              // 0-100
	Status              string                          `json:"status" gorm:"default:'not-started'"`    // not-started, in-progress, completed
	EnrolledAt          time.Time                       `json:"enrolled_at"`
	LastAccessed        time.Time                       `json:"last_accessed"`
	CompletedModules    datatypes.JSONSlice[uint]       `json:"completedModules"`    // set of module ids
	CompletedSubModules datatypes.JSONSlice[string]     `json:"completedSubModules"` // set of sub-module ids, cross-module
	QuizResults         datatypes.JSONSlice[QuizResult] `json:"quizResults"`
	IsDeleted           bool                            `gorm:"default:false"`
}

// DeriveStatus maps a progress percentage to the enrollment status
func DeriveStatus(progress int) string {
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
