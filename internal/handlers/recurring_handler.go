package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"financas/internal/calendar"
	"financas/internal/models"
	"financas/internal/services"
)

// RecurringHandler handles recurring definitions and monthly generation.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	auditService     services.AuditServicer
	clock            calendar.Clock
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, auditService services.AuditServicer, clock calendar.Clock) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService, auditService: auditService, clock: clock}
}

// RecurringRequest represents the request payload for creating or replacing
// a recurring definition.
type RecurringRequest struct {
	Name        string                 `json:"name" binding:"required,min=1,max=120"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	CategoryID  string                 `json:"category_id" binding:"required,uuid"`
	AccountID   string                 `json:"account_id" binding:"required,uuid"`
	Amount      float64                `json:"amount" binding:"gte=0"`
	DayOfMonth  int                    `json:"day_of_month" binding:"required"`
	Description string                 `json:"description" binding:"max=200"`
	IsActive    *bool                  `json:"is_active"`
}

// SetActiveRequest toggles a recurring definition.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (r RecurringRequest) toInput() services.RecurringInput {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return services.RecurringInput{
		Name:        r.Name,
		Type:        r.Type,
		CategoryID:  r.CategoryID,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		DayOfMonth:  r.DayOfMonth,
		Description: r.Description,
		IsActive:    active,
	}
}

// CreateRecurring handles the creation of a recurring definition.
// @Summary     Create a recurring transaction
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body RecurringRequest true "Recurring definition"
// @Success     201 {object} models.RecurringTransaction "Created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category or account not found"
// @Router      /recurring [post]
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	recurring, err := h.recurringService.CreateRecurring(req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "CREATE_RECURRING", "recurring", recurring.ID, c.ClientIP(),
		map[string]interface{}{"name": recurring.Name, "amount": recurring.Amount, "day_of_month": recurring.DayOfMonth})

	c.JSON(http.StatusCreated, gin.H{"recurring": recurring})
}

// GetRecurrings lists recurring definitions.
// @Summary     List recurring transactions
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       active query bool false "Only active (true) or inactive (false)"
// @Success     200 {array} models.RecurringTransaction "Definitions"
// @Router      /recurring [get]
func (h *RecurringHandler) GetRecurrings(c *gin.Context) {
	active, err := parseOptionalBool(c, "active")
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurrings, err := h.recurringService.GetRecurrings(active)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurring": recurrings})
}

// GetRecurringByID returns a recurring definition.
// @Summary     Get a recurring transaction
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring ID"
// @Success     200 {object} models.RecurringTransaction "Definition"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /recurring/{id} [get]
func (h *RecurringHandler) GetRecurringByID(c *gin.Context) {
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetRecurringByID(recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurring": recurring})
}

// UpdateRecurring replaces a recurring definition. Transactions already
// generated are left untouched.
// @Summary     Update a recurring transaction
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Recurring ID"
// @Param       request body RecurringRequest true "Recurring definition"
// @Success     200 {object} models.RecurringTransaction "Updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /recurring/{id} [put]
func (h *RecurringHandler) UpdateRecurring(c *gin.Context) {
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	recurring, err := h.recurringService.UpdateRecurring(recurringID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "UPDATE_RECURRING", "recurring", recurring.ID, c.ClientIP(),
		map[string]interface{}{"name": recurring.Name, "amount": recurring.Amount, "day_of_month": recurring.DayOfMonth})

	c.JSON(http.StatusOK, gin.H{"recurring": recurring})
}

// SetRecurringActive pauses or resumes a recurring definition.
// @Summary     Toggle a recurring transaction
// @Tags        recurring
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Recurring ID"
// @Param       request body SetActiveRequest true "Active flag"
// @Success     200 {object} models.RecurringTransaction "Updated"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /recurring/{id}/active [patch]
func (h *RecurringHandler) SetRecurringActive(c *gin.Context) {
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	recurring, err := h.recurringService.SetRecurringActive(recurringID, *req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "SET_RECURRING_ACTIVE", "recurring", recurring.ID, c.ClientIP(),
		map[string]interface{}{"is_active": recurring.IsActive})

	c.JSON(http.StatusOK, gin.H{"recurring": recurring})
}

// DeleteRecurring removes a recurring definition. Generated transactions
// are kept.
// @Summary     Delete a recurring transaction
// @Tags        recurring
// @Security    BearerAuth
// @Param       id path string true "Recurring ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c *gin.Context) {
	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurring(recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "DELETE_RECURRING", "recurring", recurringID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// GenerateRecurring materializes the active definitions for a month. Running
// it again for the same month creates nothing new.
// @Summary     Generate recurring transactions
// @Tags        recurring
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "YYYY-MM, defaults to the current month"
// @Success     200 {object} services.RecurringRunSummary "Generation summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Router      /recurring/generate [post]
func (h *RecurringHandler) GenerateRecurring(c *gin.Context) {
	month, err := parseMonthQuery(c, h.clock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.recurringService.GenerateForMonth(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "GENERATE_RECURRING", "recurring", month.String(), c.ClientIP(),
		map[string]interface{}{"generated": summary.Generated, "resynced": summary.Resynced, "skipped": summary.Skipped})

	c.JSON(http.StatusOK, summary)
}
