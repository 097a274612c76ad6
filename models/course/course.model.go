package course

import "gorm.io/gorm"

// Course levels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Subject       string  `json:"subject"`
	Grade         string  `json:"grade" gorm:"default:'12'"`
	Level         string  `json:"level" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	Thumbnail     string  `json:"thumbnail" gorm:"default:'default-course.jpg'"`
	TotalModules  int     `json:"total_modules" gorm:"default:0"` // recomputed from module count, never incremented
	TotalDuration string  `json:"total_duration" gorm:"default:'0 jam'"`
	EnrolledCount int     `json:"enrolled_count" gorm:"default:0"` // recomputed from enrollment count
	Rating        float64 `json:"rating" gorm:"default:0"`         // 0-5
	IsPopular     bool    `json:"is_popular" gorm:"default:false"`
	IsDeleted     bool    `gorm:"default:false"`
}
