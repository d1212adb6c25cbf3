package repository

import (
	"examportal/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.CategoryAssignment) error
	Exists(userID, categoryID uint) (bool, error)
	DeleteByUserAndCategory(userID, categoryID uint) error
	CategoryIDsByUser(userID uint) ([]uint, error)
	UserIDsByCategoryIDs(categoryIDs []uint) ([]uint, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.CategoryAssignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) Exists(userID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.CategoryAssignment{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *assignmentRepository) DeleteByUserAndCategory(userID, categoryID uint) error {
	return r.db.
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&model.CategoryAssignment{}).Error
}

func (r *assignmentRepository) CategoryIDsByUser(userID uint) ([]uint, error) {
	var categoryIDs []uint
	err := r.db.Model(&model.CategoryAssignment{}).
		Where("user_id = ?", userID).
		Pluck("category_id", &categoryIDs).Error
	if err != nil {
		return nil, err
	}
	return categoryIDs, nil
}

// UserIDsByCategoryIDs returns the distinct users assigned to any of the
// given categories. Used to scope a teacher's student list.
func (r *assignmentRepository) UserIDsByCategoryIDs(categoryIDs []uint) ([]uint, error) {
	var userIDs []uint
	if len(categoryIDs) == 0 {
		return userIDs, nil
	}
	err := r.db.Model(&model.CategoryAssignment{}).
		Distinct("user_id").
		Where("category_id IN ?", categoryIDs).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
