package service

import (
	"errors"
	"fmt"
	"time"

	"examportal/internal/dto"
)

// Business outcomes controllers map to status codes. Persistence failures are
// returned as ordinary wrapped errors and stay distinct from these.
var (
	ErrNotFound            = errors.New("record not found")
	ErrExamNotFound        = errors.New("exam not found")
	ErrInvalidExamWindow   = errors.New("exam start time is after its end time")
	ErrCategoryNotAssigned = errors.New("category is not assigned to this user")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username is already taken")
)

// WindowError reports a join or submit attempt outside the exam's time
// window, naming the boundary that was violated.
type WindowError struct {
	Status   EligibilityStatus
	Boundary time.Time
}

func (e *WindowError) Error() string {
	if e.Status == EligibilityNotYetOpen {
		return fmt.Sprintf("exam has not opened yet, it starts at %s", e.Boundary.Format(time.RFC3339))
	}
	return fmt.Sprintf("exam is closed, it ended at %s", e.Boundary.Format(time.RFC3339))
}

// AlreadyTakenError carries the stored result so callers can render it
// instead of a rejection.
type AlreadyTakenError struct {
	Result dto.ExamResultDTO
}

func (e *AlreadyTakenError) Error() string {
	return "exam has already been taken by this student"
}
