package service

import (
	"errors"
	"testing"
	"time"

	"examportal/internal/dto"
	"examportal/internal/model"
)

// The fixture seeds exam 50 in category 1 with two finished students, and
// exam 51 in category 2 outside teacher 10's assignments.
func newExamServiceFixture() ExamService {
	categories := newFakeCategoryRepo(
		&model.Category{ID: 1, Name: "Mathematics"},
		&model.Category{ID: 2, Name: "History"},
	)
	assignments := newFakeAssignmentRepo(
		model.CategoryAssignment{UserID: 10, CategoryID: 1},
	)
	examRepo := newFakeExamRepo(
		&model.Exam{ID: 50, Title: "Geometry Final", CategoryID: 1},
		&model.Exam{ID: 51, Title: "Antiquity Final", CategoryID: 2},
	)
	resultRepo := newFakeResultRepo(
		model.ExamResult{
			ID: 1, UserID: 20, ExamID: 50, Score: 90, CorrectCount: 9, WrongCount: 1,
			User: model.User{ID: 20, Name: "Eda", Surname: "Kaya", Role: model.RoleStudent},
		},
		model.ExamResult{
			ID: 2, UserID: 21, ExamID: 50, Score: 40, CorrectCount: 4, WrongCount: 6,
			User: model.User{ID: 21, Name: "Omer", Surname: "Demir", Role: model.RoleStudent},
		},
	)
	users := newFakeUserRepo(
		&model.User{ID: 1, Role: model.RoleManager},
		&model.User{ID: 10, Role: model.RoleTeacher},
	)
	factory := NewVisibilityFactory(examRepo, newFakeQuestionRepo(), categories, users, assignments)
	return NewExamService(examRepo, categories, assignments, resultRepo, factory)
}

func validExamRequest(categoryID uint) dto.ExamCreateDTO {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return dto.ExamCreateDTO{
		Title:      "Algebra Midterm",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Duration:   45,
		CategoryID: categoryID,
	}
}

func TestCreateExamRejectsInvertedWindow(t *testing.T) {
	svc := newExamServiceFixture()
	manager := &model.User{ID: 1, Role: model.RoleManager}

	req := validExamRequest(1)
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, err := svc.Create(manager, req)
	if !errors.Is(err, ErrInvalidExamWindow) {
		t.Fatalf("Create error = %v, want ErrInvalidExamWindow", err)
	}
}

func TestCreateExamRejectsUnknownCategory(t *testing.T) {
	svc := newExamServiceFixture()
	manager := &model.User{ID: 1, Role: model.RoleManager}

	_, err := svc.Create(manager, validExamRequest(99))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Create error = %v, want ErrNotFound", err)
	}
}

func TestTeacherMayOnlyTargetAssignedCategories(t *testing.T) {
	svc := newExamServiceFixture()
	teacher := &model.User{ID: 10, Role: model.RoleTeacher}

	if _, err := svc.Create(teacher, validExamRequest(1)); err != nil {
		t.Fatalf("Create in assigned category: %v", err)
	}

	_, err := svc.Create(teacher, validExamRequest(2))
	if !errors.Is(err, ErrCategoryNotAssigned) {
		t.Fatalf("Create error = %v, want ErrCategoryNotAssigned", err)
	}
}

func TestManagerMayTargetAnyCategory(t *testing.T) {
	svc := newExamServiceFixture()
	manager := &model.User{ID: 1, Role: model.RoleManager}

	for _, categoryID := range []uint{1, 2} {
		if _, err := svc.Create(manager, validExamRequest(categoryID)); err != nil {
			t.Fatalf("Create in category %d: %v", categoryID, err)
		}
	}
}

func TestUpdateExamUnknownID(t *testing.T) {
	svc := newExamServiceFixture()
	manager := &model.User{ID: 1, Role: model.RoleManager}

	_, err := svc.Update(manager, 404, validExamRequest(1))
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("Update error = %v, want ErrExamNotFound", err)
	}
}

func TestDeleteExamUnknownID(t *testing.T) {
	svc := newExamServiceFixture()

	err := svc.Delete(404)
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("Delete error = %v, want ErrExamNotFound", err)
	}
}

func TestExamResultsListsFinishers(t *testing.T) {
	svc := newExamServiceFixture()
	manager := &model.User{ID: 1, Role: model.RoleManager}

	rows, err := svc.Results(manager, 50)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Results returned %d rows, want 2", len(rows))
	}

	byStudent := make(map[uint]dto.ExamResultRowDTO, len(rows))
	for _, row := range rows {
		byStudent[row.StudentID] = row
	}
	if got := byStudent[20]; got.Score != 90 || got.StudentName != "Eda" || got.StudentSurname != "Kaya" {
		t.Errorf("student 20 row = %+v, want score 90 with the student's name", got)
	}
	if got := byStudent[21]; got.Score != 40 || got.CorrectCount != 4 {
		t.Errorf("student 21 row = %+v, want score 40 with 4 correct", got)
	}
}

func TestExamResultsTeacherScopedToAssignedCategories(t *testing.T) {
	svc := newExamServiceFixture()
	teacher := &model.User{ID: 10, Role: model.RoleTeacher}

	if _, err := svc.Results(teacher, 50); err != nil {
		t.Fatalf("Results for assigned category: %v", err)
	}

	_, err := svc.Results(teacher, 51)
	if !errors.Is(err, ErrCategoryNotAssigned) {
		t.Fatalf("Results error = %v, want ErrCategoryNotAssigned", err)
	}
}

func TestExamResultsUnknownExam(t *testing.T) {
	svc := newExamServiceFixture()
	manager := &model.User{ID: 1, Role: model.RoleManager}

	_, err := svc.Results(manager, 404)
	if !errors.Is(err, ErrExamNotFound) {
		t.Fatalf("Results error = %v, want ErrExamNotFound", err)
	}
}
