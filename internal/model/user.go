package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleManager = "manager"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Name            string         `json:"name" gorm:"not null"`
	Surname         string         `json:"surname" gorm:"not null"`
	Username        string         `json:"username" gorm:"not null;uniqueIndex"`
	PasswordHash    string         `json:"-" gorm:"not null"`
	ProfileImageURL *string        `json:"profile_image_url,omitempty"`
	Role            string         `json:"role" gorm:"not null;index"` // manager, teacher, student
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
