package service

import (
	"testing"
	"time"

	"examportal/internal/model"
)

func TestCheckEligibility(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	exam := &model.Exam{
		ID:        7,
		Title:     "Algebra Midterm",
		StartTime: start,
		EndTime:   end,
		Questions: []model.Question{{ID: 1, CorrectAnswer: "A"}},
	}

	tests := []struct {
		name         string
		priorResult  *model.ExamResult
		now          time.Time
		examID       uint
		wantStatus   EligibilityStatus
		wantBoundary time.Time
	}{
		{
			name:       "inside the window admits",
			now:        start.Add(time.Hour),
			examID:     7,
			wantStatus: EligibilityAdmit,
		},
		{
			name:       "exactly at the start admits",
			now:        start,
			examID:     7,
			wantStatus: EligibilityAdmit,
		},
		{
			name:       "exactly at the end admits",
			now:        end,
			examID:     7,
			wantStatus: EligibilityAdmit,
		},
		{
			name:         "before the window reports the start time",
			now:          start.Add(-time.Minute),
			examID:       7,
			wantStatus:   EligibilityNotYetOpen,
			wantBoundary: start,
		},
		{
			name:         "after the window reports the end time",
			now:          end.Add(time.Minute),
			examID:       7,
			wantStatus:   EligibilityClosed,
			wantBoundary: end,
		},
		{
			name:       "unknown exam",
			now:        start.Add(time.Hour),
			examID:     99,
			wantStatus: EligibilityNotFound,
		},
		{
			name:        "prior result wins even after the window closed",
			priorResult: &model.ExamResult{ID: 3, UserID: 42, ExamID: 7, Score: 80},
			now:         end.Add(24 * time.Hour),
			examID:      7,
			wantStatus:  EligibilityAlreadyTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resultRepo := newFakeResultRepo()
			if tt.priorResult != nil {
				resultRepo = newFakeResultRepo(*tt.priorResult)
			}
			svc := NewEligibilityService(newFakeExamRepo(exam), resultRepo)

			decision, err := svc.CheckEligibility(42, tt.examID, tt.now)
			if err != nil {
				t.Fatalf("CheckEligibility returned error: %v", err)
			}
			if decision.Status != tt.wantStatus {
				t.Fatalf("Status = %q, want %q", decision.Status, tt.wantStatus)
			}

			switch tt.wantStatus {
			case EligibilityAdmit:
				if decision.Exam == nil || decision.Exam.ID != tt.examID {
					t.Errorf("admit decision is missing the exam")
				}
				if decision.Exam != nil && len(decision.Exam.Questions) == 0 {
					t.Errorf("admit decision is missing the question set")
				}
			case EligibilityAlreadyTaken:
				if decision.Result == nil {
					t.Fatalf("already-taken decision is missing the stored result")
				}
				if decision.Result.Score != tt.priorResult.Score {
					t.Errorf("Result.Score = %d, want %d", decision.Result.Score, tt.priorResult.Score)
				}
			case EligibilityNotYetOpen, EligibilityClosed:
				if !decision.Boundary.Equal(tt.wantBoundary) {
					t.Errorf("Boundary = %v, want %v", decision.Boundary, tt.wantBoundary)
				}
			}
		})
	}
}

func TestCheckEligibilityResultCheckPrecedesExistence(t *testing.T) {
	// A result referencing an exam that has since been deleted still reports
	// already-taken, not not-found.
	resultRepo := newFakeResultRepo(model.ExamResult{ID: 1, UserID: 42, ExamID: 7, Score: 55})
	svc := NewEligibilityService(newFakeExamRepo(), resultRepo)

	decision, err := svc.CheckEligibility(42, 7, time.Now())
	if err != nil {
		t.Fatalf("CheckEligibility returned error: %v", err)
	}
	if decision.Status != EligibilityAlreadyTaken {
		t.Fatalf("Status = %q, want %q", decision.Status, EligibilityAlreadyTaken)
	}
}
