package models

import "gorm.io/gorm"

// Material is a standalone content unit, optionally attached to a course
// and/or module. It predates sub-modules and both content models coexist.
type Material struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content" gorm:"type:text"`
	Subject     string `json:"subject"`
	Grade       string `json:"grade" gorm:"default:'12'"`
	CourseID    *uint  `json:"course_id" gorm:"index"`
	ModuleID    *uint  `json:"module_id" gorm:"index"`
	Type        string `json:"type" gorm:"default:'article'"` // video, article, quiz
	Duration    string `json:"duration" gorm:"default:'15 menit'"`
	IsDeleted   bool   `gorm:"default:false"`
}
