package admin

import (
	"net/http"

	"examportal/internal/dto"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	questionService service.QuestionService
}

func NewQuestionController(questionService service.QuestionService) *QuestionController {
	return &QuestionController{questionService: questionService}
}

// Create godoc
// @Summary (Staff) Add a question to an exam
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionCreateDTO true "Question with four options and the correct letter"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.Create(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// Update godoc
// @Summary (Staff) Update a question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "question_id")
	if !ok {
		return
	}

	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.Update(id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// Delete godoc
// @Summary (Staff) Delete a question
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.questionService.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted"})
}
