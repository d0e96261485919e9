package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "financas/internal/errors"
	"financas/internal/models"
	"financas/internal/pagination"
	"financas/internal/services"
)

// multipartOverhead is allowed on top of the receipt limit for form headers.
const multipartOverhead = 1 << 20

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
	maxReceiptBytes    int64
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer, maxReceiptBytes int64) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		auditService:       auditService,
		maxReceiptBytes:    maxReceiptBytes,
	}
}

// TransactionRequest represents the request payload for creating or
// replacing a transaction. An empty date means today.
type TransactionRequest struct {
	Date        string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	CategoryID  string                 `json:"category_id" binding:"required,uuid"`
	AccountID   string                 `json:"account_id" binding:"required,uuid"`
	Amount      float64                `json:"amount" binding:"gte=0"`
	Description string                 `json:"description" binding:"max=500"`
}

// TransactionListQuery holds the filters for listing transactions
type TransactionListQuery struct {
	pagination.PageRequest
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	AccountID  string `form:"account_id" binding:"omitempty,uuid"`
	Search     string `form:"q" binding:"max=100"`
}

func (r TransactionRequest) toInput() (services.TransactionInput, error) {
	input := services.TransactionInput{
		Type:        r.Type,
		CategoryID:  r.CategoryID,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Description: r.Description,
	}
	if r.Date != "" {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return input, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD")
		}
		input.Date = date
	}
	return input, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category or account not found"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount, "date": transaction.Date.Format("2006-01-02")})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists transactions, newest first
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       month       query string false "YYYY-MM"
// @Param       type        query string false "income or expense"
// @Param       category_id query string false "Category ID"
// @Param       account_id  query string false "Account ID"
// @Param       q           query string false "Description search"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Items per page"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var query TransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	month, err := parseOptionalMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := services.TransactionFilter{Month: month, Search: query.Search}
	if query.Type != "" {
		t := models.TransactionType(query.Type)
		filter.Type = &t
	}
	if query.CategoryID != "" {
		filter.CategoryID = &query.CategoryID
	}
	if query.AccountID != "" {
		filter.AccountID = &query.AccountID
	}

	result, err := h.transactionService.GetTransactions(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns a transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction replaces the fields of a transaction
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(transactionID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"type": transaction.Type, "amount": transaction.Amount, "date": transaction.Date.Format("2006-01-02")})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction removes a transaction and its receipt
// @Summary     Delete a transaction
// @Tags        transactions
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     204 "Deleted"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// UploadReceipt attaches a receipt file to a transaction
// @Summary     Upload a receipt
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Transaction ID"
// @Param       file formData file   true "Receipt file"
// @Success     200 {object} models.Transaction "Transaction with receipt"
// @Failure     400 {object} ErrorResponse "Missing file"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     413 {object} ErrorResponse "File too large"
// @Router      /transactions/{id}/receipt [post]
func (h *TransactionHandler) UploadReceipt(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if h.maxReceiptBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxReceiptBytes+multipartOverhead)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, apperrors.ErrReceiptTooLarge)
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	transaction, err := h.transactionService.AttachReceipt(c.Request.Context(), transactionID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "ATTACH_RECEIPT", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"filename": fileHeader.Filename, "size": fileHeader.Size})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DownloadReceipt streams the receipt of a transaction
// @Summary     Download a receipt
// @Tags        transactions
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {file} file "Receipt"
// @Failure     404 {object} ErrorResponse "No receipt"
// @Router      /transactions/{id}/receipt [get]
func (h *TransactionHandler) DownloadReceipt(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	receipt, err := h.transactionService.OpenReceipt(c.Request.Context(), transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer receipt.Body.Close()

	c.DataFromReader(http.StatusOK, -1, receipt.ContentType, receipt.Body, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", receipt.Filename),
	})
}
