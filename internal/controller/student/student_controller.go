package student

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"examportal/internal/dto"
	"examportal/internal/middleware"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StudentController serves the student-facing exam flow. Every handler runs
// behind the auth middleware with the student role, so CurrentUser is never
// nil here.
type StudentController struct {
	sessionService service.ExamSessionService
}

func NewStudentController(sessionService service.ExamSessionService) *StudentController {
	return &StudentController{sessionService: sessionService}
}

// ListExams godoc
// @Summary (Student) List exams in the student's categories
// @Description Each row carries a taken flag and, when present, the result id.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StudentExamDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/exams [get]
func (c *StudentController) ListExams(ctx *gin.Context) {
	exams, err := c.sessionService.ListExams(middleware.CurrentUser(ctx))
	if err != nil {
		log.Error().Err(err).Msg("ListExams failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Could not fetch exams"})
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// JoinExam godoc
// @Summary (Student) Join an exam
// @Description Inside the window returns the paper without correct answers. A
// @Description student who already has a result gets that result back instead.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Success 200 {object} dto.JoinExamDTO "Exam paper, or the stored result when already taken"
// @Failure 403 {object} dto.ErrorResponse "Outside the exam window"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /student/exams/{exam_id}/join [get]
func (c *StudentController) JoinExam(ctx *gin.Context) {
	examID, ok := c.examIDParam(ctx)
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)

	outcome, err := c.sessionService.JoinExam(user.ID, examID, time.Now())
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	if outcome.Result != nil {
		ctx.JSON(http.StatusOK, gin.H{"taken": true, "result": outcome.Result})
		return
	}
	ctx.JSON(http.StatusOK, outcome.Paper)
}

// FinishExam godoc
// @Summary (Student) Submit answers and record the result
// @Description Scores every question of the exam; unanswered questions count as
// @Description wrong. Exactly one result per student and exam is kept.
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exam_id path int true "Exam ID"
// @Param answers body dto.FinishExamDTO true "Answers keyed by question id"
// @Success 201 {object} dto.ExamResultDTO
// @Failure 403 {object} dto.ErrorResponse "Outside the exam window"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Already taken; the existing result is attached"
// @Router /student/exams/{exam_id}/finish [post]
func (c *StudentController) FinishExam(ctx *gin.Context) {
	examID, ok := c.examIDParam(ctx)
	if !ok {
		return
	}
	user := middleware.CurrentUser(ctx)

	var req dto.FinishExamDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.sessionService.FinishExam(user.ID, examID, req.Answers, time.Now())
	if err != nil {
		c.respondSessionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// ListResults godoc
// @Summary (Student) List the student's results
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExamResultDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /student/results [get]
func (c *StudentController) ListResults(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	results, err := c.sessionService.ListResults(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", user.ID).Msg("ListResults failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Could not fetch results"})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

func (c *StudentController) examIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("exam_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid exam_id parameter"})
		return 0, false
	}
	return uint(id), true
}

func (c *StudentController) respondSessionError(ctx *gin.Context, err error) {
	var windowErr *service.WindowError
	var takenErr *service.AlreadyTakenError
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Exam not found"})
	case errors.As(err, &windowErr):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: windowErr.Error()})
	case errors.As(err, &takenErr):
		ctx.JSON(http.StatusConflict, gin.H{
			"message": takenErr.Error(),
			"result":  takenErr.Result,
		})
	default:
		log.Error().Err(err).Msg("exam session error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}
