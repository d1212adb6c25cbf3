package model

import (
	"time"

	"gorm.io/gorm"
)

type Exam struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Title      string         `json:"title" gorm:"not null"`
	StartTime  time.Time      `json:"start_time" gorm:"not null"`
	EndTime    time.Time      `json:"end_time" gorm:"not null"`
	Duration   int            `json:"duration"` // minutes
	CategoryID uint           `json:"category_id" gorm:"not null;index"`
	Category   Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Questions  []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
