package service

import (
	"errors"
	"fmt"
	"time"

	"examportal/internal/model"
	"examportal/internal/repository"

	"gorm.io/gorm"
)

type EligibilityStatus string

const (
	EligibilityAdmit        EligibilityStatus = "admit"
	EligibilityAlreadyTaken EligibilityStatus = "already_taken"
	EligibilityNotYetOpen   EligibilityStatus = "not_yet_open"
	EligibilityClosed       EligibilityStatus = "closed"
	EligibilityNotFound     EligibilityStatus = "not_found"
)

// EligibilityDecision is the outcome of one admission check. Exam is set on
// admit (with its questions in order), Result on already-taken, Boundary on
// the two window rejections.
type EligibilityDecision struct {
	Status   EligibilityStatus
	Exam     *model.Exam
	Result   *model.ExamResult
	Boundary time.Time
}

type EligibilityService interface {
	CheckEligibility(studentID, examID uint, now time.Time) (*EligibilityDecision, error)
}

type eligibilityService struct {
	examRepo   repository.ExamRepository
	resultRepo repository.ResultRepository
}

func NewEligibilityService(examRepo repository.ExamRepository, resultRepo repository.ResultRepository) EligibilityService {
	return &eligibilityService{examRepo: examRepo, resultRepo: resultRepo}
}

// CheckEligibility is a pure read and must be re-run with the current clock
// on every attempt. The prior-result check comes before existence and window
// checks: a student revisiting an expired exam sees their score, not a
// window error.
func (s *eligibilityService) CheckEligibility(studentID, examID uint, now time.Time) (*EligibilityDecision, error) {
	result, err := s.resultRepo.FindByStudentAndExam(studentID, examID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking prior result for student %d exam %d: %w", studentID, examID, err)
	}
	if result != nil {
		return &EligibilityDecision{Status: EligibilityAlreadyTaken, Result: result}, nil
	}

	exam, err := s.examRepo.FindByIDWithQuestions(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &EligibilityDecision{Status: EligibilityNotFound}, nil
		}
		return nil, fmt.Errorf("loading exam %d: %w", examID, err)
	}

	if now.Before(exam.StartTime) {
		return &EligibilityDecision{Status: EligibilityNotYetOpen, Boundary: exam.StartTime}, nil
	}
	if now.After(exam.EndTime) {
		return &EligibilityDecision{Status: EligibilityClosed, Boundary: exam.EndTime}, nil
	}

	return &EligibilityDecision{Status: EligibilityAdmit, Exam: exam}, nil
}
