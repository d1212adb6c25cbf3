package service

import (
	"errors"
	"fmt"
	"time"

	"examportal/internal/dto"
	"examportal/internal/model"
	"examportal/internal/repository"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// JoinOutcome is the result of a join attempt that was not rejected: either
// the exam paper (admitted) or the previously stored result (already taken).
type JoinOutcome struct {
	Paper  *dto.JoinExamDTO
	Result *dto.ExamResultDTO
}

// ExamSessionService drives the student-facing exam flow: list, join,
// finish, results.
type ExamSessionService interface {
	ListExams(student *model.User) ([]dto.StudentExamDTO, error)
	JoinExam(studentID, examID uint, now time.Time) (*JoinOutcome, error)
	FinishExam(studentID, examID uint, answers map[uint]string, now time.Time) (*dto.ExamResultDTO, error)
	ListResults(studentID uint) ([]dto.ExamResultDTO, error)
}

type examSessionService struct {
	eligibility EligibilityService
	scoring     ScoringService
	resultRepo  repository.ResultRepository
	visibility  VisibilityFactory
}

func NewExamSessionService(
	eligibility EligibilityService,
	scoring ScoringService,
	resultRepo repository.ResultRepository,
	visibility VisibilityFactory,
) ExamSessionService {
	return &examSessionService{
		eligibility: eligibility,
		scoring:     scoring,
		resultRepo:  resultRepo,
		visibility:  visibility,
	}
}

func (s *examSessionService) ListExams(student *model.User) ([]dto.StudentExamDTO, error) {
	exams, err := s.visibility.ForUser(student).VisibleExams()
	if err != nil {
		log.Error().Err(err).Uint("studentID", student.ID).Msg("ListExams: failed to load visible exams")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	results, err := s.resultRepo.FindAllByStudent(student.ID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", student.ID).Msg("ListExams: failed to load results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	resultByExam := make(map[uint]uint, len(results))
	for _, r := range results {
		resultByExam[r.ExamID] = r.ID
	}

	dtos := make([]dto.StudentExamDTO, 0, len(exams))
	for _, exam := range exams {
		row := dto.StudentExamDTO{
			ID:           exam.ID,
			Title:        exam.Title,
			StartTime:    exam.StartTime,
			EndTime:      exam.EndTime,
			Duration:     exam.Duration,
			CategoryName: exam.Category.Name,
		}
		if resultID, taken := resultByExam[exam.ID]; taken {
			row.Taken = true
			id := resultID
			row.ResultID = &id
		}
		dtos = append(dtos, row)
	}
	return dtos, nil
}

func (s *examSessionService) JoinExam(studentID, examID uint, now time.Time) (*JoinOutcome, error) {
	decision, err := s.eligibility.CheckEligibility(studentID, examID, now)
	if err != nil {
		return nil, err
	}

	switch decision.Status {
	case EligibilityAlreadyTaken:
		result := resultToDTO(decision.Result)
		return &JoinOutcome{Result: &result}, nil
	case EligibilityNotFound:
		return nil, ErrExamNotFound
	case EligibilityNotYetOpen, EligibilityClosed:
		return nil, &WindowError{Status: decision.Status, Boundary: decision.Boundary}
	}

	exam := decision.Exam
	paper := dto.JoinExamDTO{
		ExamID:       exam.ID,
		Title:        exam.Title,
		CategoryName: exam.Category.Name,
		Duration:     exam.Duration,
		EndTime:      exam.EndTime,
		Questions:    make([]dto.ExamQuestionDTO, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		var questionDTO dto.ExamQuestionDTO
		if err := copier.Copy(&questionDTO, &q); err != nil {
			return nil, fmt.Errorf("error preparing exam paper: %w", err)
		}
		paper.Questions = append(paper.Questions, questionDTO)
	}
	return &JoinOutcome{Paper: &paper}, nil
}

// FinishExam re-runs the eligibility gate with the submission clock, scores
// the whole question set and records exactly one result. A duplicate-key
// rejection from the store is folded into the already-taken path, so a race
// between two submissions never produces two results.
func (s *examSessionService) FinishExam(studentID, examID uint, answers map[uint]string, now time.Time) (*dto.ExamResultDTO, error) {
	decision, err := s.eligibility.CheckEligibility(studentID, examID, now)
	if err != nil {
		return nil, err
	}

	switch decision.Status {
	case EligibilityAlreadyTaken:
		return nil, &AlreadyTakenError{Result: resultToDTO(decision.Result)}
	case EligibilityNotFound:
		return nil, ErrExamNotFound
	case EligibilityNotYetOpen, EligibilityClosed:
		return nil, &WindowError{Status: decision.Status, Boundary: decision.Boundary}
	}

	exam := decision.Exam
	summary := s.scoring.Score(exam.Questions, answers)

	result := model.ExamResult{
		UserID:       studentID,
		ExamID:       examID,
		Score:        summary.Score,
		CorrectCount: summary.CorrectCount,
		WrongCount:   summary.WrongCount,
	}
	if err := s.resultRepo.Create(&result); err != nil {
		if errors.Is(err, repository.ErrResultExists) {
			existing, findErr := s.resultRepo.FindByStudentAndExam(studentID, examID)
			if findErr != nil {
				return nil, fmt.Errorf("loading existing result after duplicate insert: %w", findErr)
			}
			log.Warn().Uint("studentID", studentID).Uint("examID", examID).
				Msg("FinishExam: concurrent submission lost the insert race, returning stored result")
			return nil, &AlreadyTakenError{Result: resultToDTO(existing)}
		}
		log.Error().Err(err).Uint("studentID", studentID).Uint("examID", examID).
			Msg("FinishExam: failed to persist result")
		return nil, fmt.Errorf("error saving exam result: %w", err)
	}

	log.Info().
		Uint("studentID", studentID).
		Uint("examID", examID).
		Int("score", summary.Score).
		Int("correct", summary.CorrectCount).
		Int("wrong", summary.WrongCount).
		Msg("FinishExam: result recorded")

	resultDTO := resultToDTO(&result)
	resultDTO.ExamTitle = exam.Title
	resultDTO.CategoryName = exam.Category.Name
	return &resultDTO, nil
}

func (s *examSessionService) ListResults(studentID uint) ([]dto.ExamResultDTO, error) {
	results, err := s.resultRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("ListResults: repository error")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}

	dtos := make([]dto.ExamResultDTO, 0, len(results))
	for _, r := range results {
		row := resultToDTO(&r)
		row.ExamTitle = r.Exam.Title
		row.CategoryName = r.Exam.Category.Name
		dtos = append(dtos, row)
	}
	return dtos, nil
}

func resultToDTO(result *model.ExamResult) dto.ExamResultDTO {
	return dto.ExamResultDTO{
		ID:           result.ID,
		ExamID:       result.ExamID,
		Score:        result.Score,
		CorrectCount: result.CorrectCount,
		WrongCount:   result.WrongCount,
		CreatedAt:    result.CreatedAt,
	}
}
