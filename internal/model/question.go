package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ExamID        uint           `json:"exam_id" gorm:"not null;index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	OptionA       string         `json:"option_a" gorm:"not null"`
	OptionB       string         `json:"option_b" gorm:"not null"`
	OptionC       string         `json:"option_c" gorm:"not null"`
	OptionD       string         `json:"option_d" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"` // "A".."D"
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
