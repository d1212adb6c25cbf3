package dto

import "time"

// --- Categories (manager only) ---

type CategoryCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

type CategoryResponseDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Exams ---

type ExamCreateDTO struct {
	Title      string    `json:"title" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Duration   int       `json:"duration" binding:"required,gt=0"`
	CategoryID uint      `json:"category_id" binding:"required"`
}

type ExamResponseDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Duration     int       `json:"duration"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// --- Questions ---

type QuestionCreateDTO struct {
	ExamID        uint   `json:"exam_id" binding:"required"`
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
}

type QuestionResponseDTO struct {
	ID            uint   `json:"id"`
	ExamID        uint   `json:"exam_id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

// --- Users (staff and students) ---

type UserCreateDTO struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=manager teacher"`
}

type UserUpdateDTO struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password,omitempty" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"required,oneof=manager teacher"`
}

type StudentCreateDTO struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type StudentUpdateDTO struct {
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password,omitempty" binding:"omitempty,min=6"`
}

// --- Category assignments ---

// AssignmentItemDTO mirrors one checkbox row of the assignment screen:
// every category with its current assignment state.
type AssignmentItemDTO struct {
	CategoryID   uint   `json:"category_id" binding:"required"`
	CategoryName string `json:"category_name,omitempty"`
	Assigned     bool   `json:"assigned"`
}

type AssignmentSyncDTO struct {
	Items []AssignmentItemDTO `json:"items" binding:"required,dive"`
}

// --- Exam results (staff view) ---

// ExamResultRowDTO is one row of the staff results table for an exam.
type ExamResultRowDTO struct {
	ID             uint      `json:"id"`
	StudentID      uint      `json:"student_id"`
	StudentName    string    `json:"student_name"`
	StudentSurname string    `json:"student_surname"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	WrongCount     int       `json:"wrong_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// --- Dashboard ---

type DashboardDTO struct {
	CategoryCount int64 `json:"category_count"`
	ExamCount     int64 `json:"exam_count"`
	QuestionCount int64 `json:"question_count"`
	StudentCount  int64 `json:"student_count"`
	StaffCount    int64 `json:"staff_count"`
}
