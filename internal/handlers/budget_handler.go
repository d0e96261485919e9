package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"financas/internal/calendar"
	"financas/internal/services"
)

// BudgetHandler handles budget templates, monthly overrides and progress.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
	clock         calendar.Clock
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer, clock calendar.Clock) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService, clock: clock}
}

// PlannedAmountRequest represents the request payload for setting a budget.
type PlannedAmountRequest struct {
	PlannedAmount *float64 `json:"planned_amount" binding:"required,gte=0"`
}

// BudgetsResponse is the effective budget of a month with its progress.
type BudgetsResponse struct {
	Month     string                    `json:"month"`
	Effective map[string]float64        `json:"effective"`
	Progress  []services.BudgetProgress `json:"progress"`
}

// GetBudgets returns the effective budgets and spending progress of a month.
// @Summary     Effective budgets for a month
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "YYYY-MM, defaults to the current month"
// @Success     200 {object} BudgetsResponse "Effective budgets and progress"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	month, err := parseMonthQuery(c, h.clock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	effective, err := h.budgetService.GetEffectiveBudgets(month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	progress, err := h.budgetService.GetBudgetProgress(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetsResponse{Month: month.String(), Effective: effective, Progress: progress})
}

// GetTemplates lists the default monthly budgets.
// @Summary     List budget templates
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.BudgetTemplate "Templates"
// @Router      /budgets/templates [get]
func (h *BudgetHandler) GetTemplates(c *gin.Context) {
	templates, err := h.budgetService.GetTemplates()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// SetTemplate creates or replaces the template of a category.
// @Summary     Set a budget template
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category_id path string               true "Category ID"
// @Param       request     body PlannedAmountRequest true "Planned amount"
// @Success     200 {object} models.BudgetTemplate "Template saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /budgets/templates/{category_id} [put]
func (h *BudgetHandler) SetTemplate(c *gin.Context) {
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlannedAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	template, err := h.budgetService.SetTemplate(categoryID, *req.PlannedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "SET_BUDGET_TEMPLATE", "budget_template", template.ID, c.ClientIP(),
		map[string]interface{}{"category_id": categoryID, "planned_amount": template.PlannedAmount})

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTemplate removes the template of a category.
// @Summary     Delete a budget template
// @Tags        budgets
// @Security    BearerAuth
// @Param       category_id path string true "Category ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Router      /budgets/templates/{category_id} [delete]
func (h *BudgetHandler) DeleteTemplate(c *gin.Context) {
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteTemplate(categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "DELETE_BUDGET_TEMPLATE", "budget_template", categoryID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GetOverrides lists the overrides of a month.
// @Summary     List budget overrides
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "YYYY-MM, defaults to the current month"
// @Success     200 {array} models.Budget "Overrides"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /budgets/overrides [get]
func (h *BudgetHandler) GetOverrides(c *gin.Context) {
	month, err := parseMonthQuery(c, h.clock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overrides, err := h.budgetService.GetOverrides(month)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month.String(), "overrides": overrides})
}

// SetOverride creates or replaces the override of a category in a month.
// @Summary     Set a budget override
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month       path string               true "YYYY-MM"
// @Param       category_id path string               true "Category ID"
// @Param       request     body PlannedAmountRequest true "Planned amount"
// @Success     200 {object} models.Budget "Override saved"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /budgets/overrides/{month}/{category_id} [put]
func (h *BudgetHandler) SetOverride(c *gin.Context) {
	month, err := calendar.ParseMonth(c.Param("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PlannedAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	override, err := h.budgetService.SetOverride(month, categoryID, *req.PlannedAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "SET_BUDGET_OVERRIDE", "budget", override.ID, c.ClientIP(),
		map[string]interface{}{"month": month.String(), "category_id": categoryID, "planned_amount": override.PlannedAmount})

	c.JSON(http.StatusOK, gin.H{"override": override})
}

// DeleteOverride removes the override of a category in a month, reverting
// it to the template.
// @Summary     Delete a budget override
// @Tags        budgets
// @Security    BearerAuth
// @Param       month       path string true "YYYY-MM"
// @Param       category_id path string true "Category ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Override not found"
// @Router      /budgets/overrides/{month}/{category_id} [delete]
func (h *BudgetHandler) DeleteOverride(c *gin.Context) {
	month, err := calendar.ParseMonth(c.Param("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	categoryID, err := parsePathID(c, "category_id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteOverride(month, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "DELETE_BUDGET_OVERRIDE", "budget", categoryID, c.ClientIP(),
		map[string]interface{}{"month": month.String()})

	c.Status(http.StatusNoContent)
}
