package admin

import (
	"net/http"

	"examportal/internal/dto"
	"examportal/internal/middleware"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	examService     service.ExamService
	questionService service.QuestionService
}

func NewExamController(examService service.ExamService, questionService service.QuestionService) *ExamController {
	return &ExamController{examService: examService, questionService: questionService}
}

// List godoc
// @Summary (Staff) List visible exams
// @Description Managers see every exam, teachers only those in their assigned categories.
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExamResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	exams, err := c.examService.List(middleware.CurrentUser(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// Create godoc
// @Summary (Staff) Create an exam
// @Description Rejects a start time after the end time. Teachers may only target their assigned categories.
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam body dto.ExamCreateDTO true "Exam data"
// @Success 201 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid body or time window"
// @Failure 403 {object} dto.ErrorResponse "Category not assigned"
// @Router /admin/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	exam, err := c.examService.Create(middleware.CurrentUser(ctx), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

// Update godoc
// @Summary (Staff) Update an exam
// @Tags Admin - Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param exam body dto.ExamCreateDTO true "Exam data"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [put]
func (c *ExamController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}

	var req dto.ExamCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	exam, err := c.examService.Update(middleware.CurrentUser(ctx), id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// Delete godoc
// @Summary (Staff) Delete an exam and its questions
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id} [delete]
func (c *ExamController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}
	if err := c.examService.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam deleted"})
}

// Results godoc
// @Summary (Staff) List an exam's recorded results
// @Description One row per student who finished, best score first. Teachers may only inspect exams in their assigned categories.
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.ExamResultRowDTO
// @Failure 403 {object} dto.ErrorResponse "Category not assigned"
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/results [get]
func (c *ExamController) Results(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}

	results, err := c.examService.Results(middleware.CurrentUser(ctx), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// Questions godoc
// @Summary (Staff) List an exam's questions
// @Description Scoped by visibility: a teacher gets an empty list for exams outside their categories.
// @Tags Admin - Exams
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{exam_id}/questions [get]
func (c *ExamController) Questions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "exam_id")
	if !ok {
		return
	}

	questions, err := c.questionService.ListByExam(middleware.CurrentUser(ctx), id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}
