package service

import (
	"errors"
	"fmt"

	"examportal/internal/dto"
	"examportal/internal/model"
	"examportal/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CategoryService interface {
	List(actor *model.User) ([]dto.CategoryResponseDTO, error)
	Create(req dto.CategoryCreateDTO) (*dto.CategoryResponseDTO, error)
	Update(id uint, req dto.CategoryCreateDTO) (*dto.CategoryResponseDTO, error)
	Delete(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	visibility   VisibilityFactory
}

func NewCategoryService(categoryRepo repository.CategoryRepository, visibility VisibilityFactory) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, visibility: visibility}
}

// List is visibility-scoped: managers get every category, teachers only
// their assigned ones (the exam-create dropdown).
func (s *categoryService) List(actor *model.User) ([]dto.CategoryResponseDTO, error) {
	categories, err := s.visibility.ForUser(actor).VisibleCategories()
	if err != nil {
		log.Error().Err(err).Msg("List categories: repository error")
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}

	dtos := make([]dto.CategoryResponseDTO, 0, len(categories))
	for _, category := range categories {
		var row dto.CategoryResponseDTO
		if err := copier.Copy(&row, &category); err != nil {
			return nil, fmt.Errorf("error preparing category response: %w", err)
		}
		dtos = append(dtos, row)
	}
	return dtos, nil
}

func (s *categoryService) Create(req dto.CategoryCreateDTO) (*dto.CategoryResponseDTO, error) {
	category := model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Create category: repository error")
		return nil, fmt.Errorf("database error creating category: %w", err)
	}

	var resp dto.CategoryResponseDTO
	copier.Copy(&resp, &category)
	return &resp, nil
}

func (s *categoryService) Update(id uint, req dto.CategoryCreateDTO) (*dto.CategoryResponseDTO, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading category %d: %w", id, err)
	}

	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		log.Error().Err(err).Uint("categoryID", id).Msg("Update category: repository error")
		return nil, fmt.Errorf("database error updating category: %w", err)
	}

	var resp dto.CategoryResponseDTO
	copier.Copy(&resp, category)
	return &resp, nil
}

func (s *categoryService) Delete(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading category %d: %w", id, err)
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("categoryID", id).Msg("Delete category: repository error")
		return fmt.Errorf("database error deleting category: %w", err)
	}
	return nil
}
