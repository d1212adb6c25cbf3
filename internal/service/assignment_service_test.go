package service

import (
	"errors"
	"testing"

	"examportal/internal/dto"
	"examportal/internal/model"
)

func newAssignmentFixture() (AssignmentService, *fakeAssignmentRepo) {
	assignments := newFakeAssignmentRepo(
		model.CategoryAssignment{UserID: 10, CategoryID: 1},
	)
	categories := newFakeCategoryRepo(
		&model.Category{ID: 1, Name: "Mathematics"},
		&model.Category{ID: 2, Name: "History"},
	)
	users := newFakeUserRepo(&model.User{ID: 10, Role: model.RoleTeacher})
	return NewAssignmentService(assignments, categories, users), assignments
}

func TestListForUserReturnsOneRowPerCategory(t *testing.T) {
	svc, _ := newAssignmentFixture()

	items, err := svc.ListForUser(10)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListForUser returned %d rows, want 2", len(items))
	}

	byCategory := make(map[uint]dto.AssignmentItemDTO, len(items))
	for _, item := range items {
		byCategory[item.CategoryID] = item
	}
	if !byCategory[1].Assigned {
		t.Errorf("category 1 should be assigned")
	}
	if byCategory[2].Assigned {
		t.Errorf("category 2 should not be assigned")
	}
}

func TestListForUserUnknownUser(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, err := svc.ListForUser(99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ListForUser error = %v, want ErrNotFound", err)
	}
}

func TestSyncAddsAndRemovesAssignments(t *testing.T) {
	svc, assignments := newAssignmentFixture()

	// Deselect category 1, select category 2.
	req := dto.AssignmentSyncDTO{Items: []dto.AssignmentItemDTO{
		{CategoryID: 1, Assigned: false},
		{CategoryID: 2, Assigned: true},
	}}
	if err := svc.Sync(10, req); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	ids, err := assignments.CategoryIDsByUser(10)
	if err != nil {
		t.Fatalf("CategoryIDsByUser: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("assigned categories = %v, want [2]", ids)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	svc, assignments := newAssignmentFixture()

	req := dto.AssignmentSyncDTO{Items: []dto.AssignmentItemDTO{
		{CategoryID: 1, Assigned: true},
		{CategoryID: 2, Assigned: true},
	}}
	if err := svc.Sync(10, req); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	createsAfterFirst := assignments.createCalls

	if err := svc.Sync(10, req); err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if assignments.createCalls != createsAfterFirst {
		t.Errorf("second Sync created %d new assignments, want 0",
			assignments.createCalls-createsAfterFirst)
	}

	ids, _ := assignments.CategoryIDsByUser(10)
	if len(ids) != 2 {
		t.Fatalf("assigned categories = %v, want both", ids)
	}
}

func TestSyncUnknownUser(t *testing.T) {
	svc, _ := newAssignmentFixture()

	err := svc.Sync(99, dto.AssignmentSyncDTO{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Sync error = %v, want ErrNotFound", err)
	}
}
