package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "financas/internal/errors"
	"financas/internal/services"
)

// ImportHandler handles statement uploads.
type ImportHandler struct {
	importService services.ImportServicer
	auditService  services.AuditServicer
	maxBytes      int64
}

// NewImportHandler creates a new ImportHandler. maxBytes caps the upload
// size; zero disables the cap.
func NewImportHandler(importService services.ImportServicer, auditService services.AuditServicer, maxBytes int64) *ImportHandler {
	return &ImportHandler{importService: importService, auditService: auditService, maxBytes: maxBytes}
}

// ImportCSV imports a bank statement into a single account.
// @Summary     Import a CSV statement
// @Description Every row is imported; unparseable dates become today, unparseable amounts become zero and unknown categories go to the fallback category.
// @Tags        import
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file    formData file   true  "CSV file"
// @Param       account formData string false "Account name; defaults to the file's account column"
// @Success     200 {object} services.ImportResult "Import summary"
// @Failure     400 {object} ErrorResponse "Missing or unreadable file"
// @Failure     413 {object} ErrorResponse "File too large"
// @Failure     422 {object} ErrorResponse "No fallback category"
// @Router      /import/csv [post]
func (h *ImportHandler) ImportCSV(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrReceiptTooLarge, "File exceeds the upload limit"))
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

	result, err := h.importService.ImportCSV(file, c.PostForm("account"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(auditUserID(c), "IMPORT_CSV", "account", result.AccountID, c.ClientIP(),
		map[string]interface{}{"filename": fileHeader.Filename, "imported": result.Imported, "account": result.AccountName})

	c.JSON(http.StatusOK, result)
}
