package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/logger"
	"financas/internal/models"
	"financas/internal/pagination"
	"financas/internal/receipts"
)

// transactionService handles ledger entries and their receipts.
type transactionService struct {
	db              *gorm.DB
	store           receipts.Store
	clock           calendar.Clock
	maxReceiptBytes int64
}

// NewTransactionService creates a new TransactionServicer. A non-positive
// maxReceiptBytes disables the upload size check.
func NewTransactionService(db *gorm.DB, store receipts.Store, clock calendar.Clock, maxReceiptBytes int64) TransactionServicer {
	return &transactionService{
		db:              db,
		store:           store,
		clock:           clock,
		maxReceiptBytes: maxReceiptBytes,
	}
}

func (s *transactionService) validate(input *TransactionInput) error {
	if !validTransactionType(input.Type) {
		return apperrors.ErrInvalidTransactionType
	}
	if input.Amount < 0 {
		return apperrors.ErrInvalidAmount
	}
	if input.CategoryID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.AccountID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "account is required")
	}
	if _, err := findCategory(s.db, input.CategoryID); err != nil {
		return err
	}
	if _, err := findAccount(s.db, input.AccountID); err != nil {
		return err
	}

	if input.Date.IsZero() {
		input.Date = calendar.Today(s.clock)
	}
	input.Date = dateOnly(input.Date)
	input.Description = models.TruncateDescription(strings.TrimSpace(input.Description))
	return nil
}

// CreateTransaction records a new ledger entry. A zero date means today.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Date:        input.Date,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		Description: input.Description,
	}
	if err := s.db.Omit(clause.Associations).Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(transaction.ID)
}

// GetTransactions returns a filtered page of transactions, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Preload("Category").Preload("Account").
		Scopes(pagination.Paginate(page)).
		Order("date DESC").Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Month != nil {
		q = q.Where("date >= ? AND date < ?", f.Month.FirstDay(), f.Month.NextFirstDay())
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	return q
}

// GetTransactionByID returns a transaction with its category and account.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Category").Preload("Account").Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction replaces the editable fields of a transaction.
func (s *transactionService) UpdateTransaction(transactionID string, input TransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"date":        input.Date,
		"type":        input.Type,
		"category_id": input.CategoryID,
		"account_id":  input.AccountID,
		"amount":      input.Amount,
		"description": input.Description,
	}
	if err := s.db.Model(&models.Transaction{}).Where("id = ?", transaction.ID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(transaction.ID)
}

// DeleteTransaction soft-deletes a transaction and removes its receipt.
// A receipt that cannot be removed is logged and left behind.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.Transaction{}, "id = ?", transaction.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.removeReceipt(ctx, transaction.ReceiptKey)
	return nil
}

// AttachReceipt stores a receipt file and links it to the transaction,
// replacing any previous one.
func (s *transactionService) AttachReceipt(ctx context.Context, transactionID, filename, contentType string, size int64, data io.Reader) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if s.maxReceiptBytes > 0 && size > s.maxReceiptBytes {
		return nil, apperrors.ErrReceiptTooLarge
	}
	if s.store == nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("receipt storage is not configured"))
	}

	key, err := s.store.Save(ctx, receipts.ObjectKey(transaction.ID, filename), data, contentType, size)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Model(&models.Transaction{}).Where("id = ?", transaction.ID).Update("receipt_key", key).Error; err != nil {
		s.removeReceipt(ctx, key)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	previous := transaction.ReceiptKey
	if previous != "" && previous != key {
		s.removeReceipt(ctx, previous)
	}
	transaction.ReceiptKey = key
	return transaction, nil
}

// OpenReceipt opens the receipt linked to a transaction. The caller closes
// the body.
func (s *transactionService) OpenReceipt(ctx context.Context, transactionID string) (*Receipt, error) {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.ReceiptKey == "" || s.store == nil {
		return nil, apperrors.ErrReceiptNotFound
	}

	body, err := s.store.Open(ctx, transaction.ReceiptKey)
	if err != nil {
		if errors.Is(err, receipts.ErrNotFound) {
			return nil, apperrors.ErrReceiptNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	filename := path.Base(transaction.ReceiptKey)
	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Receipt{Body: body, Filename: filename, ContentType: contentType}, nil
}

func (s *transactionService) removeReceipt(ctx context.Context, key string) {
	if key == "" || s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		logger.Get().Warnw("Failed to remove receipt", "key", key, "error", err)
	}
}
