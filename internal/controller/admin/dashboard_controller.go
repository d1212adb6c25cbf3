package admin

import (
	"net/http"

	"examportal/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboardService service.DashboardService
}

func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Stats godoc
// @Summary (Staff) Portal totals for the dashboard
// @Tags Admin - Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/dashboard [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.dashboardService.Stats()
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
