package service

import (
	"errors"
	"testing"
	"time"

	"examportal/internal/model"
)

type sessionFixture struct {
	svc        ExamSessionService
	resultRepo *fakeResultRepo
	exam       *model.Exam
	student    *model.User
}

func newSessionFixture(t *testing.T, now time.Time) *sessionFixture {
	t.Helper()

	category := &model.Category{ID: 1, Name: "Mathematics"}
	exam := &model.Exam{
		ID:         7,
		Title:      "Algebra Midterm",
		StartTime:  now.Add(-time.Hour),
		EndTime:    now.Add(time.Hour),
		Duration:   45,
		CategoryID: 1,
		Category:   *category,
		Questions: []model.Question{
			{ID: 1, ExamID: 7, Text: "2+2?", CorrectAnswer: "A"},
			{ID: 2, ExamID: 7, Text: "3*3?", CorrectAnswer: "B"},
			{ID: 3, ExamID: 7, Text: "7-5?", CorrectAnswer: "C"},
			{ID: 4, ExamID: 7, Text: "9/3?", CorrectAnswer: "D"},
		},
	}
	student := &model.User{ID: 42, Role: model.RoleStudent}

	examRepo := newFakeExamRepo(exam)
	resultRepo := newFakeResultRepo()
	assignments := newFakeAssignmentRepo(model.CategoryAssignment{UserID: 42, CategoryID: 1})
	factory := NewVisibilityFactory(
		examRepo,
		newFakeQuestionRepo(),
		newFakeCategoryRepo(category),
		newFakeUserRepo(student),
		assignments,
	)

	svc := NewExamSessionService(
		NewEligibilityService(examRepo, resultRepo),
		NewScoringService(),
		resultRepo,
		factory,
	)
	return &sessionFixture{svc: svc, resultRepo: resultRepo, exam: exam, student: student}
}

func TestJoinExamReturnsPaperWithoutAnswers(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	outcome, err := f.svc.JoinExam(f.student.ID, f.exam.ID, now)
	if err != nil {
		t.Fatalf("JoinExam: %v", err)
	}
	if outcome.Result != nil {
		t.Fatalf("fresh join returned a result instead of the paper")
	}
	if outcome.Paper == nil {
		t.Fatalf("fresh join returned no paper")
	}
	if outcome.Paper.ExamID != f.exam.ID || outcome.Paper.Title != f.exam.Title {
		t.Errorf("paper = %+v, want exam %d %q", outcome.Paper, f.exam.ID, f.exam.Title)
	}
	if len(outcome.Paper.Questions) != len(f.exam.Questions) {
		t.Errorf("paper has %d questions, want %d", len(outcome.Paper.Questions), len(f.exam.Questions))
	}
}

func TestJoinExamOutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	tests := []struct {
		name string
		at   time.Time
	}{
		{"before the window", f.exam.StartTime.Add(-time.Minute)},
		{"after the window", f.exam.EndTime.Add(time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.JoinExam(f.student.ID, f.exam.ID, tt.at)
			var windowErr *WindowError
			if !errors.As(err, &windowErr) {
				t.Fatalf("JoinExam error = %v, want WindowError", err)
			}
		})
	}
}

func TestJoinExamUnknownExam(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	_, err := f.svc.JoinExam(f.student.ID, 99, now)
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("JoinExam error = %v, want ErrExamNotFound", err)
	}
}

func TestFinishExamScoresAndStoresOneResult(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	answers := map[uint]string{1: "A", 2: "B", 3: "X"} // question 4 unanswered
	result, err := f.svc.FinishExam(f.student.ID, f.exam.ID, answers, now)
	if err != nil {
		t.Fatalf("FinishExam: %v", err)
	}
	if result.Score != 50 || result.CorrectCount != 2 || result.WrongCount != 2 {
		t.Errorf("result = score %d correct %d wrong %d, want 50/2/2",
			result.Score, result.CorrectCount, result.WrongCount)
	}
	if result.ExamTitle != f.exam.Title {
		t.Errorf("ExamTitle = %q, want %q", result.ExamTitle, f.exam.Title)
	}

	stored, err := f.resultRepo.FindAllByStudent(f.student.ID)
	if err != nil {
		t.Fatalf("FindAllByStudent: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored %d results, want 1", len(stored))
	}
}

func TestFinishExamTwiceRejectsSecondSubmission(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	first, err := f.svc.FinishExam(f.student.ID, f.exam.ID, map[uint]string{1: "A"}, now)
	if err != nil {
		t.Fatalf("first FinishExam: %v", err)
	}

	_, err = f.svc.FinishExam(f.student.ID, f.exam.ID, map[uint]string{1: "A", 2: "B"}, now)
	var takenErr *AlreadyTakenError
	if !errors.As(err, &takenErr) {
		t.Fatalf("second FinishExam error = %v, want AlreadyTakenError", err)
	}
	if takenErr.Result.Score != first.Score {
		t.Errorf("rejection carries score %d, want the first result's %d", takenErr.Result.Score, first.Score)
	}

	stored, _ := f.resultRepo.FindAllByStudent(f.student.ID)
	if len(stored) != 1 {
		t.Fatalf("stored %d results after duplicate submission, want 1", len(stored))
	}
}

func TestFinishExamLostInsertRaceFoldsIntoAlreadyTaken(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	// The competing submission passes the eligibility check at the same time
	// and wins the insert; ours gets the duplicate-key rejection.
	f.resultRepo.loseRaceWith = &model.ExamResult{
		UserID: f.student.ID,
		ExamID: f.exam.ID,
		Score:  75, CorrectCount: 3, WrongCount: 1,
	}

	_, err := f.svc.FinishExam(f.student.ID, f.exam.ID, map[uint]string{1: "A"}, now)
	var takenErr *AlreadyTakenError
	if !errors.As(err, &takenErr) {
		t.Fatalf("FinishExam error = %v, want AlreadyTakenError", err)
	}
	if takenErr.Result.Score != 75 {
		t.Errorf("rejection carries score %d, want the winning submission's 75", takenErr.Result.Score)
	}

	stored, _ := f.resultRepo.FindAllByStudent(f.student.ID)
	if len(stored) != 1 {
		t.Fatalf("stored %d results after the race, want 1", len(stored))
	}
}

func TestJoinExamAfterFinishReturnsStoredResult(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	finished, err := f.svc.FinishExam(f.student.ID, f.exam.ID, map[uint]string{1: "A", 2: "B"}, now)
	if err != nil {
		t.Fatalf("FinishExam: %v", err)
	}

	// Even long after the window closed, the student sees their result.
	outcome, err := f.svc.JoinExam(f.student.ID, f.exam.ID, f.exam.EndTime.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("JoinExam after finish: %v", err)
	}
	if outcome.Paper != nil {
		t.Fatalf("join after finish handed out the paper again")
	}
	if outcome.Result == nil || outcome.Result.Score != finished.Score {
		t.Fatalf("join after finish returned %+v, want the stored result with score %d",
			outcome.Result, finished.Score)
	}
}

func TestListExamsAnnotatesTakenExams(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	before, err := f.svc.ListExams(f.student)
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(before) != 1 || before[0].Taken {
		t.Fatalf("before finishing: rows = %+v, want one untaken exam", before)
	}

	if _, err := f.svc.FinishExam(f.student.ID, f.exam.ID, map[uint]string{1: "A"}, now); err != nil {
		t.Fatalf("FinishExam: %v", err)
	}

	after, err := f.svc.ListExams(f.student)
	if err != nil {
		t.Fatalf("ListExams: %v", err)
	}
	if len(after) != 1 || !after[0].Taken || after[0].ResultID == nil {
		t.Fatalf("after finishing: rows = %+v, want one taken exam with a result id", after)
	}
}

func TestListResultsReturnsStudentResults(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	if _, err := f.svc.FinishExam(f.student.ID, f.exam.ID, map[uint]string{1: "A"}, now); err != nil {
		t.Fatalf("FinishExam: %v", err)
	}

	results, err := f.svc.ListResults(f.student.ID)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("ListResults returned %d rows, want 1", len(results))
	}
	if results[0].ExamID != f.exam.ID {
		t.Errorf("ExamID = %d, want %d", results[0].ExamID, f.exam.ID)
	}
}
