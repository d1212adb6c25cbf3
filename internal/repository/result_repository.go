package repository

import (
	"errors"

	"examportal/internal/model"

	"gorm.io/gorm"
)

// ErrResultExists reports a duplicate (student, exam) result insert. It is
// raised by the composite unique index on exam_results, which closes the race
// between two concurrent submissions that both passed the eligibility check.
var ErrResultExists = errors.New("result already exists for this student and exam")

type ResultRepository interface {
	Create(result *model.ExamResult) error
	FindByStudentAndExam(studentID, examID uint) (*model.ExamResult, error)
	FindAllByStudent(studentID uint) ([]model.ExamResult, error)
	FindAllByExam(examID uint) ([]model.ExamResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(result *model.ExamResult) error {
	if err := r.db.Create(result).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrResultExists
		}
		return err
	}
	return nil
}

func (r *resultRepository) FindByStudentAndExam(studentID, examID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.db.Where("user_id = ? AND exam_id = ?", studentID, examID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindAllByStudent(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.db.
		Preload("Exam").
		Preload("Exam.Category").
		Where("user_id = ?", studentID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resultRepository) FindAllByExam(examID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.db.
		Preload("User").
		Where("exam_id = ?", examID).
		Order("score DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
