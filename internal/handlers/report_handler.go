package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financas/internal/errors"
	"financas/internal/services"
	"financas/internal/uuid"
)

// ReportHandler serves downloadable reports.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportTransactionsCSV downloads transactions as CSV.
// @Summary     Export transactions
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       month       query string false "YYYY-MM; all months when omitted"
// @Param       category_id query string false "Category ID"
// @Success     200 {file} file "CSV report"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /reports/transactions.csv [get]
func (h *ReportHandler) ExportTransactionsCSV(c *gin.Context) {
	month, err := parseOptionalMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID := optionalString(c, "category_id")
	if categoryID != nil && !uuid.IsValid(*categoryID) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category_id"))
		return
	}

	file, err := h.reportService.ExportTransactionsCSV(month, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
