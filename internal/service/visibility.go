package service

import (
	"examportal/internal/model"
	"examportal/internal/repository"
)

// Visibility is a read-only projection of what a user may list. It is
// selected once per request from the authenticated role, so listing code
// never branches on role strings. It must not be used to authorize writes.
type Visibility interface {
	VisibleExams() ([]model.Exam, error)
	VisibleStudents() ([]model.User, error)
	VisibleCategories() ([]model.Category, error)
	VisibleQuestions(examID uint) ([]model.Question, error)
}

type VisibilityFactory interface {
	ForUser(user *model.User) Visibility
}

type visibilityFactory struct {
	examRepo       repository.ExamRepository
	questionRepo   repository.QuestionRepository
	categoryRepo   repository.CategoryRepository
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

func NewVisibilityFactory(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
) VisibilityFactory {
	return &visibilityFactory{
		examRepo:       examRepo,
		questionRepo:   questionRepo,
		categoryRepo:   categoryRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (f *visibilityFactory) ForUser(user *model.User) Visibility {
	if user == nil {
		return noVisibility{}
	}
	switch user.Role {
	case model.RoleManager:
		return &managerVisibility{f: f}
	case model.RoleTeacher:
		return &scopedVisibility{f: f, userID: user.ID, includeStudents: true}
	case model.RoleStudent:
		return &scopedVisibility{f: f, userID: user.ID}
	default:
		return noVisibility{}
	}
}

// managerVisibility sees everything unfiltered.
type managerVisibility struct {
	f *visibilityFactory
}

func (v *managerVisibility) VisibleExams() ([]model.Exam, error) {
	return v.f.examRepo.FindAllWithCategory()
}

func (v *managerVisibility) VisibleStudents() ([]model.User, error) {
	return v.f.userRepo.FindAllByRole(model.RoleStudent)
}

func (v *managerVisibility) VisibleCategories() ([]model.Category, error) {
	return v.f.categoryRepo.FindAll()
}

func (v *managerVisibility) VisibleQuestions(examID uint) ([]model.Question, error) {
	return v.f.questionRepo.FindByExamID(examID)
}

// scopedVisibility restricts everything to the user's assigned categories.
// Teachers additionally see the students sharing those categories; students
// see no other users and no answer material outside the exam gate.
type scopedVisibility struct {
	f               *visibilityFactory
	userID          uint
	includeStudents bool
}

func (v *scopedVisibility) VisibleExams() ([]model.Exam, error) {
	categoryIDs, err := v.f.assignmentRepo.CategoryIDsByUser(v.userID)
	if err != nil {
		return nil, err
	}
	return v.f.examRepo.FindAllByCategoryIDs(categoryIDs)
}

func (v *scopedVisibility) VisibleStudents() ([]model.User, error) {
	if !v.includeStudents {
		return nil, nil
	}
	categoryIDs, err := v.f.assignmentRepo.CategoryIDsByUser(v.userID)
	if err != nil {
		return nil, err
	}
	studentIDs, err := v.f.assignmentRepo.UserIDsByCategoryIDs(categoryIDs)
	if err != nil {
		return nil, err
	}
	return v.f.userRepo.FindAllByRoleAndIDs(model.RoleStudent, studentIDs)
}

func (v *scopedVisibility) VisibleCategories() ([]model.Category, error) {
	categoryIDs, err := v.f.assignmentRepo.CategoryIDsByUser(v.userID)
	if err != nil {
		return nil, err
	}
	return v.f.categoryRepo.FindAllByIDs(categoryIDs)
}

func (v *scopedVisibility) VisibleQuestions(examID uint) ([]model.Question, error) {
	if !v.includeStudents {
		return nil, nil
	}
	exam, err := v.f.examRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := v.f.assignmentRepo.CategoryIDsByUser(v.userID)
	if err != nil {
		return nil, err
	}
	for _, id := range categoryIDs {
		if id == exam.CategoryID {
			return v.f.questionRepo.FindByExamID(examID)
		}
	}
	return nil, nil
}

// noVisibility is the empty projection for missing or unrecognized roles.
type noVisibility struct{}

func (noVisibility) VisibleExams() ([]model.Exam, error)          { return nil, nil }
func (noVisibility) VisibleStudents() ([]model.User, error)       { return nil, nil }
func (noVisibility) VisibleCategories() ([]model.Category, error) { return nil, nil }
func (noVisibility) VisibleQuestions(uint) ([]model.Question, error) {
	return nil, nil
}
