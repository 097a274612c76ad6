package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Name         string    `json:"name" gorm:"default:''"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Password     string    `json:"-" gorm:"not null"`
	Avatar       string    `json:"avatar" gorm:"default:''"`
	Role         string    `json:"role" gorm:"default:'student'"` // student, admin
	AuthProvider string    `json:"auth_provider" gorm:"default:'local'"`
	IsVerified   bool      `json:"is_verified" gorm:"default:false"`
	LastLogin    time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted    bool      `gorm:"default:false"`
}
