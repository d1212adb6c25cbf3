package model

import "time"

// ExamResult is insert-only. The composite unique index is what actually
// guarantees one result per (student, exam); the eligibility check is only
// the fast path.
type ExamResult struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_results_user_exam"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ExamID       uint      `json:"exam_id" gorm:"not null;uniqueIndex:idx_results_user_exam"`
	Exam         Exam      `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Score        int       `json:"score"` // 0-100
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	CreatedAt    time.Time `json:"created_at"`
}
