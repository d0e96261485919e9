package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"financas/internal/calendar"
	"financas/internal/services"
)

// DashboardHandler serves the monthly summary.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	clock            calendar.Clock
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer, clock calendar.Clock) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, clock: clock}
}

// GetDashboard returns income, expense and budget totals for a month.
// @Summary     Monthly dashboard
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "YYYY-MM, defaults to the current month"
// @Success     200 {object} services.MonthSummary "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	month, err := parseMonthQuery(c, h.clock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.dashboardService.GetMonthSummary(month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
