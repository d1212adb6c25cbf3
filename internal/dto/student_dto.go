package dto

import "time"

// StudentExamDTO is one row of the student's exam list, annotated with
// whether a result already exists. The annotation drives UI state only;
// enforcement lives in the eligibility gate.
type StudentExamDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     int       `json:"duration"`
	CategoryName string    `json:"category_name,omitempty"`
	Taken        bool      `json:"taken"`
	ResultID     *uint     `json:"result_id,omitempty"`
}

// ExamQuestionDTO is a question as shown to a student taking the exam.
// It deliberately has no correct-answer field.
type ExamQuestionDTO struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"option_a"`
	OptionB string `json:"option_b"`
	OptionC string `json:"option_c"`
	OptionD string `json:"option_d"`
}

// JoinExamDTO is the response to a successful join: the exam paper.
type JoinExamDTO struct {
	ExamID       uint              `json:"exam_id"`
	Title        string            `json:"title"`
	CategoryName string            `json:"category_name,omitempty"`
	Duration     int               `json:"duration"`
	EndTime      time.Time         `json:"end_time"`
	Questions    []ExamQuestionDTO `json:"questions"`
}

// FinishExamDTO carries the submitted answers, keyed by question id. Absent
// keys mean unanswered.
type FinishExamDTO struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

type ExamResultDTO struct {
	ID           uint      `json:"id"`
	ExamID       uint      `json:"exam_id"`
	ExamTitle    string    `json:"exam_title,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Score        int       `json:"score"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	CreatedAt    time.Time `json:"created_at"`
}
