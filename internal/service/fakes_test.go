package service

import (
	"examportal/internal/model"
	"examportal/internal/repository"

	"gorm.io/gorm"
)

// In-memory repository fakes. Each implements just enough bookkeeping for
// the service tests; errors can be injected per call where a test needs a
// failing store.

type fakeExamRepo struct {
	exams map[uint]*model.Exam
}

func newFakeExamRepo(exams ...*model.Exam) *fakeExamRepo {
	r := &fakeExamRepo{exams: make(map[uint]*model.Exam)}
	for _, e := range exams {
		r.exams[e.ID] = e
	}
	return r
}

func (r *fakeExamRepo) Create(exam *model.Exam) error {
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) FindByID(id uint) (*model.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return exam, nil
}

func (r *fakeExamRepo) FindByIDWithQuestions(id uint) (*model.Exam, error) {
	return r.FindByID(id)
}

func (r *fakeExamRepo) FindAllWithCategory() ([]model.Exam, error) {
	var exams []model.Exam
	for _, e := range r.exams {
		exams = append(exams, *e)
	}
	return exams, nil
}

func (r *fakeExamRepo) FindAllByCategoryIDs(categoryIDs []uint) ([]model.Exam, error) {
	var exams []model.Exam
	for _, e := range r.exams {
		for _, id := range categoryIDs {
			if e.CategoryID == id {
				exams = append(exams, *e)
				break
			}
		}
	}
	return exams, nil
}

func (r *fakeExamRepo) Update(exam *model.Exam) error {
	r.exams[exam.ID] = exam
	return nil
}

func (r *fakeExamRepo) Delete(id uint) error {
	delete(r.exams, id)
	return nil
}

func (r *fakeExamRepo) Count() (int64, error) {
	return int64(len(r.exams)), nil
}

type fakeResultRepo struct {
	results []model.ExamResult
	nextID  uint

	// When set, the next Create loses the insert race: a competing result
	// appears in the store and the call reports a duplicate.
	loseRaceWith *model.ExamResult
}

func newFakeResultRepo(results ...model.ExamResult) *fakeResultRepo {
	r := &fakeResultRepo{nextID: 1}
	for _, res := range results {
		if res.ID >= r.nextID {
			r.nextID = res.ID + 1
		}
		r.results = append(r.results, res)
	}
	return r
}

func (r *fakeResultRepo) Create(result *model.ExamResult) error {
	if r.loseRaceWith != nil {
		competing := *r.loseRaceWith
		r.loseRaceWith = nil
		competing.ID = r.nextID
		r.nextID++
		r.results = append(r.results, competing)
		return repository.ErrResultExists
	}
	for _, existing := range r.results {
		if existing.UserID == result.UserID && existing.ExamID == result.ExamID {
			return repository.ErrResultExists
		}
	}
	result.ID = r.nextID
	r.nextID++
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResultRepo) FindByStudentAndExam(studentID, examID uint) (*model.ExamResult, error) {
	for i := range r.results {
		if r.results[i].UserID == studentID && r.results[i].ExamID == examID {
			result := r.results[i]
			return &result, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeResultRepo) FindAllByStudent(studentID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	for _, res := range r.results {
		if res.UserID == studentID {
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *fakeResultRepo) FindAllByExam(examID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	for _, res := range r.results {
		if res.ExamID == examID {
			results = append(results, res)
		}
	}
	return results, nil
}

type fakeAssignmentRepo struct {
	pairs       []model.CategoryAssignment
	createCalls int
}

func newFakeAssignmentRepo(pairs ...model.CategoryAssignment) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{pairs: pairs}
}

func (r *fakeAssignmentRepo) Create(assignment *model.CategoryAssignment) error {
	r.createCalls++
	r.pairs = append(r.pairs, *assignment)
	return nil
}

func (r *fakeAssignmentRepo) Exists(userID, categoryID uint) (bool, error) {
	for _, p := range r.pairs {
		if p.UserID == userID && p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAssignmentRepo) DeleteByUserAndCategory(userID, categoryID uint) error {
	kept := r.pairs[:0]
	for _, p := range r.pairs {
		if !(p.UserID == userID && p.CategoryID == categoryID) {
			kept = append(kept, p)
		}
	}
	r.pairs = kept
	return nil
}

func (r *fakeAssignmentRepo) CategoryIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	for _, p := range r.pairs {
		if p.UserID == userID {
			ids = append(ids, p.CategoryID)
		}
	}
	return ids, nil
}

func (r *fakeAssignmentRepo) UserIDsByCategoryIDs(categoryIDs []uint) ([]uint, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, p := range r.pairs {
		for _, cid := range categoryIDs {
			if p.CategoryID == cid && !seen[p.UserID] {
				seen[p.UserID] = true
				ids = append(ids, p.UserID)
			}
		}
	}
	return ids, nil
}

type fakeCategoryRepo struct {
	categories map[uint]*model.Category
}

func newFakeCategoryRepo(categories ...*model.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[uint]*model.Category)}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(category *model.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) FindByID(id uint) (*model.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	for _, c := range r.categories {
		categories = append(categories, *c)
	}
	return categories, nil
}

func (r *fakeCategoryRepo) FindAllByIDs(ids []uint) ([]model.Category, error) {
	var categories []model.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			categories = append(categories, *c)
		}
	}
	return categories, nil
}

func (r *fakeCategoryRepo) Update(category *model.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) Count() (int64, error) {
	return int64(len(r.categories)), nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
}

func newFakeQuestionRepo(questions ...*model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: make(map[uint]*model.Question)}
	for _, q := range questions {
		r.questions[q.ID] = q
	}
	return r
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return question, nil
}

func (r *fakeQuestionRepo) FindByExamID(examID uint) ([]model.Question, error) {
	var questions []model.Question
	for _, q := range r.questions {
		if q.ExamID == examID {
			questions = append(questions, *q)
		}
	}
	return questions, nil
}

func (r *fakeQuestionRepo) Update(question *model.Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) Count() (int64, error) {
	return int64(len(r.questions)), nil
}

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*model.User), nextID: 1}
	for _, u := range users {
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAllByRole(role string) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindAllByRoles(roles []string) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				users = append(users, *u)
				break
			}
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindAllByRoleAndIDs(role string, ids []uint) ([]model.User, error) {
	var users []model.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok && u.Role == role {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(role string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}
