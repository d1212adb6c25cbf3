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

type ExamService interface {
	List(actor *model.User) ([]dto.ExamResponseDTO, error)
	Create(actor *model.User, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	Update(actor *model.User, id uint, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error)
	Delete(id uint) error
	Results(actor *model.User, examID uint) ([]dto.ExamResultRowDTO, error)
}

type examService struct {
	examRepo       repository.ExamRepository
	categoryRepo   repository.CategoryRepository
	assignmentRepo repository.AssignmentRepository
	resultRepo     repository.ResultRepository
	visibility     VisibilityFactory
}

func NewExamService(
	examRepo repository.ExamRepository,
	categoryRepo repository.CategoryRepository,
	assignmentRepo repository.AssignmentRepository,
	resultRepo repository.ResultRepository,
	visibility VisibilityFactory,
) ExamService {
	return &examService{
		examRepo:       examRepo,
		categoryRepo:   categoryRepo,
		assignmentRepo: assignmentRepo,
		resultRepo:     resultRepo,
		visibility:     visibility,
	}
}

func (s *examService) List(actor *model.User) ([]dto.ExamResponseDTO, error) {
	exams, err := s.visibility.ForUser(actor).VisibleExams()
	if err != nil {
		log.Error().Err(err).Msg("List exams: repository error")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	dtos := make([]dto.ExamResponseDTO, 0, len(exams))
	for _, exam := range exams {
		dtos = append(dtos, examToDTO(&exam))
	}
	return dtos, nil
}

func (s *examService) Create(actor *model.User, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	if err := s.validateTarget(actor, req); err != nil {
		return nil, err
	}

	exam := model.Exam{
		Title:      req.Title,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Duration:   req.Duration,
		CategoryID: req.CategoryID,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Create exam: repository error")
		return nil, fmt.Errorf("database error creating exam: %w", err)
	}

	created, err := s.examRepo.FindByID(exam.ID)
	if err != nil {
		resp := examToDTO(&exam)
		return &resp, nil
	}
	resp := examToDTO(created)
	return &resp, nil
}

func (s *examService) Update(actor *model.User, id uint, req dto.ExamCreateDTO) (*dto.ExamResponseDTO, error) {
	if err := s.validateTarget(actor, req); err != nil {
		return nil, err
	}

	exam, err := s.examRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", id, err)
	}

	exam.Title = req.Title
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime
	exam.Duration = req.Duration
	exam.CategoryID = req.CategoryID
	if err := s.examRepo.Update(exam); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("Update exam: repository error")
		return nil, fmt.Errorf("database error updating exam: %w", err)
	}

	resp := examToDTO(exam)
	return &resp, nil
}

func (s *examService) Delete(id uint) error {
	if _, err := s.examRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExamNotFound
		}
		return fmt.Errorf("loading exam %d: %w", id, err)
	}
	if err := s.examRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("examID", id).Msg("Delete exam: repository error")
		return fmt.Errorf("database error deleting exam: %w", err)
	}
	return nil
}

// Results lists an exam's recorded results for staff, best score first.
// Teachers may only inspect exams in their assigned categories.
func (s *examService) Results(actor *model.User, examID uint) ([]dto.ExamResultRowDTO, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	if actor.Role == model.RoleTeacher {
		assigned, err := s.assignmentRepo.Exists(actor.ID, exam.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("checking category assignment: %w", err)
		}
		if !assigned {
			return nil, ErrCategoryNotAssigned
		}
	}

	results, err := s.resultRepo.FindAllByExam(examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("Exam results: repository error")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}

	rows := make([]dto.ExamResultRowDTO, 0, len(results))
	for _, result := range results {
		rows = append(rows, dto.ExamResultRowDTO{
			ID:             result.ID,
			StudentID:      result.UserID,
			StudentName:    result.User.Name,
			StudentSurname: result.User.Surname,
			Score:          result.Score,
			CorrectCount:   result.CorrectCount,
			WrongCount:     result.WrongCount,
			CreatedAt:      result.CreatedAt,
		})
	}
	return rows, nil
}

// validateTarget checks the time window and, for teachers, that the target
// category is one of theirs. Managers may write into any category.
func (s *examService) validateTarget(actor *model.User, req dto.ExamCreateDTO) error {
	if req.StartTime.After(req.EndTime) {
		return ErrInvalidExamWindow
	}

	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading category %d: %w", req.CategoryID, err)
	}

	if actor.Role == model.RoleTeacher {
		assigned, err := s.assignmentRepo.Exists(actor.ID, req.CategoryID)
		if err != nil {
			return fmt.Errorf("checking category assignment: %w", err)
		}
		if !assigned {
			return ErrCategoryNotAssigned
		}
	}
	return nil
}

func examToDTO(exam *model.Exam) dto.ExamResponseDTO {
	return dto.ExamResponseDTO{
		ID:           exam.ID,
		Title:        exam.Title,
		StartTime:    exam.StartTime,
		EndTime:      exam.EndTime,
		Duration:     exam.Duration,
		CategoryID:   exam.CategoryID,
		CategoryName: exam.Category.Name,
		CreatedAt:    exam.CreatedAt,
	}
}
