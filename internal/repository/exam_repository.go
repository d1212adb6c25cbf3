package repository

import (
	"examportal/internal/model"

	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByID(id uint) (*model.Exam, error)
	FindByIDWithQuestions(id uint) (*model.Exam, error)
	FindAllWithCategory() ([]model.Exam, error)
	FindAllByCategoryIDs(categoryIDs []uint) ([]model.Exam, error)
	Update(exam *model.Exam) error
	Delete(id uint) error
	Count() (int64, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.Preload("Category").First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindByIDWithQuestions states its joins explicitly: the exam, its category
// and its questions in insertion order. Callers that only need metadata use
// FindByID instead.
func (r *examRepository) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.
		Preload("Category").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAllWithCategory() ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Preload("Category").Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindAllByCategoryIDs(categoryIDs []uint) ([]model.Exam, error) {
	var exams []model.Exam
	if len(categoryIDs) == 0 {
		return exams, nil
	}
	err := r.db.
		Preload("Category").
		Where("category_id IN ?", categoryIDs).
		Order("created_at DESC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *examRepository) Delete(id uint) error {
	// Questions go with the exam.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Exam{}, id).Error
	})
}

func (r *examRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Exam{}).Count(&count).Error
	return count, err
}
