package admin

import (
	"net/http"

	"examportal/internal/dto"
	"examportal/internal/middleware"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// List godoc
// @Summary (Staff) List visible categories
// @Description Managers see every category, teachers only their assigned ones.
// @Tags Admin - Categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.categoryService.List(middleware.CurrentUser(ctx))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// Create godoc
// @Summary (Manager) Create a category
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CategoryCreateDTO true "Category data"
// @Success 201 {object} dto.CategoryResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CategoryCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	category, err := c.categoryService.Create(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary (Manager) Update a category
// @Tags Admin - Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category_id path int true "Category ID"
// @Param category body dto.CategoryCreateDTO true "Category data"
// @Success 200 {object} dto.CategoryResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/categories/{category_id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "category_id")
	if !ok {
		return
	}

	var req dto.CategoryCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	category, err := c.categoryService.Update(id, req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary (Manager) Delete a category
// @Tags Admin - Categories
// @Produce json
// @Security BearerAuth
// @Param category_id path int true "Category ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/categories/{category_id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "category_id")
	if !ok {
		return
	}
	if err := c.categoryService.Delete(id); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted"})
}
