package admin

import (
	"errors"
	"net/http"
	"strconv"

	"examportal/internal/dto"
	"examportal/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondServiceError maps business outcomes to status codes; anything else
// is a persistence or infrastructure failure and stays a 500.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrExamNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidExamWindow):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrCategoryNotAssigned):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Admin handler: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(value), true
}
