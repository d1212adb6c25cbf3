package service

import (
	"errors"
	"fmt"

	"examportal/internal/dto"
	"examportal/internal/model"
	"examportal/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AssignmentService interface {
	ListForUser(userID uint) ([]dto.AssignmentItemDTO, error)
	Sync(userID uint, req dto.AssignmentSyncDTO) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	categoryRepo   repository.CategoryRepository
	userRepo       repository.UserRepository
}

func NewAssignmentService(
	assignmentRepo repository.AssignmentRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
	}
}

// ListForUser returns every category with its current assignment state for
// the given user, one row per checkbox on the assignment screen.
func (s *assignmentService) ListForUser(userID uint) ([]dto.AssignmentItemDTO, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	assignedIDs, err := s.assignmentRepo.CategoryIDsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching assignments: %w", err)
	}
	assigned := make(map[uint]bool, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = true
	}

	items := make([]dto.AssignmentItemDTO, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.AssignmentItemDTO{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Assigned:     assigned[category.ID],
		})
	}
	return items, nil
}

// Sync reconciles the user's assignments against the submitted checkbox
// state: selected pairs are inserted only if missing, deselected pairs are
// removed. Re-running the same payload is a no-op.
func (s *assignmentService) Sync(userID uint, req dto.AssignmentSyncDTO) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading user %d: %w", userID, err)
	}

	for _, item := range req.Items {
		if item.Assigned {
			exists, err := s.assignmentRepo.Exists(userID, item.CategoryID)
			if err != nil {
				return fmt.Errorf("checking assignment: %w", err)
			}
			if exists {
				continue
			}
			assignment := model.CategoryAssignment{UserID: userID, CategoryID: item.CategoryID}
			if err := s.assignmentRepo.Create(&assignment); err != nil {
				log.Error().Err(err).Uint("userID", userID).Uint("categoryID", item.CategoryID).
					Msg("Sync: failed to create assignment")
				return fmt.Errorf("database error creating assignment: %w", err)
			}
		} else {
			if err := s.assignmentRepo.DeleteByUserAndCategory(userID, item.CategoryID); err != nil {
				log.Error().Err(err).Uint("userID", userID).Uint("categoryID", item.CategoryID).
					Msg("Sync: failed to delete assignment")
				return fmt.Errorf("database error deleting assignment: %w", err)
			}
		}
	}
	return nil
}
