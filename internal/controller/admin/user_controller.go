package admin

import (
	"net/http"

	"examportal/internal/dto"
	"examportal/internal/middleware"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
)

// UserController covers staff accounts, student accounts and category
// assignments. Staff and student management stay separate endpoints because
// the original portal separates the screens and teachers may list (but
// never manage) students.
type UserController struct {
	userService       service.UserService
	assignmentService service.AssignmentService
}

func NewUserController(userService service.UserService, assignmentService service.AssignmentService) *UserController {
	return &UserController{userService: userService, assignmentService: assignmentService}
}

// --- Staff (manager only) ---

// ListStaff godoc
// @Summary (Manager) List manager and teacher accounts
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserDTO
// @Router /admin/users [get]
func (c *UserController) ListStaff(ctx *gin.Context) {
	users, err := c.userService.ListStaff()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// CreateStaff godoc
// @Summary (Manager) Create a manager or teacher account
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body dto.UserCreateDTO true "Account data including role"
// @Success 201 {object} dto.UserDTO
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/users [post]
func (c *UserController) CreateStaff(ctx *gin.Context) {
	var req dto.UserCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.userService.CreateStaff(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// UpdateStaff godoc
// @Summary (Manager) Update a staff account
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param user body dto.UserUpdateDTO true "Account data; password only when changing it"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id} [put]
func (c *UserController) UpdateStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	var req dto.UserUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.userService.UpdateStaff(id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteStaff godoc
// @Summary (Manager) Delete a staff account
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id} [delete]
func (c *UserController) DeleteStaff(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	if err := c.userService.DeleteStaff(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}

// --- Students ---

// ListStudents godoc
// @Summary (Staff) List visible students
// @Description Managers see every student, teachers only those sharing an assigned category.
// @Tags Admin - Students
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserDTO
// @Router /admin/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.userService.ListStudents(middleware.CurrentUser(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// CreateStudent godoc
// @Summary (Manager) Create a student account
// @Tags Admin - Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param student body dto.StudentCreateDTO true "Student data"
// @Success 201 {object} dto.UserDTO
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /admin/students [post]
func (c *UserController) CreateStudent(ctx *gin.Context) {
	var req dto.StudentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	student, err := c.userService.CreateStudent(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, student)
}

// UpdateStudent godoc
// @Summary (Manager) Update a student account
// @Tags Admin - Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "Student user ID"
// @Param student body dto.StudentUpdateDTO true "Student data"
// @Success 200 {object} dto.UserDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/students/{user_id} [put]
func (c *UserController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	var req dto.StudentUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	student, err := c.userService.UpdateStudent(id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// DeleteStudent godoc
// @Summary (Manager) Delete a student account
// @Tags Admin - Students
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "Student user ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/students/{user_id} [delete]
func (c *UserController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	if err := c.userService.DeleteStudent(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Student deleted"})
}

// --- Category assignments (manager only) ---

// ListAssignments godoc
// @Summary (Manager) List a user's category assignment state
// @Description One row per category with its current assigned flag, for teachers and students alike.
// @Tags Admin - Assignments
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.AssignmentItemDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id}/assignments [get]
func (c *UserController) ListAssignments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	items, err := c.assignmentService.ListForUser(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// SyncAssignments godoc
// @Summary (Manager) Reconcile a user's category assignments
// @Description Inserts selected pairs that are missing and removes deselected ones. Safe to repeat.
// @Tags Admin - Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param assignments body dto.AssignmentSyncDTO true "Desired assignment state"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{user_id}/assignments [put]
func (c *UserController) SyncAssignments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}

	var req dto.AssignmentSyncDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.assignmentService.Sync(id, req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Assignments updated"})
}
