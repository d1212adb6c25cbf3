package service

import (
	"fmt"

	"examportal/internal/dto"
	"examportal/internal/model"
	"examportal/internal/repository"
)

type DashboardService interface {
	Stats() (*dto.DashboardDTO, error)
}

type dashboardService struct {
	categoryRepo repository.CategoryRepository
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
}

func NewDashboardService(
	categoryRepo repository.CategoryRepository,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
) DashboardService {
	return &dashboardService{
		categoryRepo: categoryRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

func (s *dashboardService) Stats() (*dto.DashboardDTO, error) {
	var stats dto.DashboardDTO
	var err error

	if stats.CategoryCount, err = s.categoryRepo.Count(); err != nil {
		return nil, fmt.Errorf("counting categories: %w", err)
	}
	if stats.ExamCount, err = s.examRepo.Count(); err != nil {
		return nil, fmt.Errorf("counting exams: %w", err)
	}
	if stats.QuestionCount, err = s.questionRepo.Count(); err != nil {
		return nil, fmt.Errorf("counting questions: %w", err)
	}
	if stats.StudentCount, err = s.userRepo.CountByRole(model.RoleStudent); err != nil {
		return nil, fmt.Errorf("counting students: %w", err)
	}

	total, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	stats.StaffCount = total - stats.StudentCount
	return &stats, nil
}
