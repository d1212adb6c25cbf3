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

type QuestionService interface {
	ListByExam(actor *model.User, examID uint) ([]dto.QuestionResponseDTO, error)
	Create(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	Update(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	Delete(id uint) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	examRepo     repository.ExamRepository
	visibility   VisibilityFactory
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	examRepo repository.ExamRepository,
	visibility VisibilityFactory,
) QuestionService {
	return &questionService{questionRepo: questionRepo, examRepo: examRepo, visibility: visibility}
}

func (s *questionService) ListByExam(actor *model.User, examID uint) ([]dto.QuestionResponseDTO, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	questions, err := s.visibility.ForUser(actor).VisibleQuestions(examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("ListByExam: repository error")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for _, question := range questions {
		var row dto.QuestionResponseDTO
		if err := copier.Copy(&row, &question); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		dtos = append(dtos, row)
	}
	return dtos, nil
}

func (s *questionService) Create(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	if _, err := s.examRepo.FindByID(req.ExamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("loading exam %d: %w", req.ExamID, err)
	}

	var question model.Question
	if err := copier.Copy(&question, &req); err != nil {
		return nil, fmt.Errorf("error preparing question model: %w", err)
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("examID", req.ExamID).Msg("Create question: repository error")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	var resp dto.QuestionResponseDTO
	copier.Copy(&resp, &question)
	return &resp, nil
}

func (s *questionService) Update(id uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading question %d: %w", id, err)
	}

	question.ExamID = req.ExamID
	question.Text = req.Text
	question.OptionA = req.OptionA
	question.OptionB = req.OptionB
	question.OptionC = req.OptionC
	question.OptionD = req.OptionD
	question.CorrectAnswer = req.CorrectAnswer
	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Update question: repository error")
		return nil, fmt.Errorf("database error updating question: %w", err)
	}

	var resp dto.QuestionResponseDTO
	copier.Copy(&resp, question)
	return &resp, nil
}

func (s *questionService) Delete(id uint) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading question %d: %w", id, err)
	}
	if err := s.questionRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Delete question: repository error")
		return fmt.Errorf("database error deleting question: %w", err)
	}
	return nil
}
