package services

import (
	"errors"
	"io"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/importer"
	"financas/internal/logger"
	"financas/internal/models"
)

// FallbackCategoryName receives imported rows whose category is missing or
// unknown.
const FallbackCategoryName = "Contas"

const importBatchSize = 100

// importService persists normalized statement rows.
type importService struct {
	db             *gorm.DB
	clock          calendar.Clock
	defaultAccount string
}

// NewImportService creates a new ImportServicer. defaultAccount names the
// account used when neither the request nor the file names one.
func NewImportService(db *gorm.DB, clock calendar.Clock, defaultAccount string) ImportServicer {
	return &importService{db: db, clock: clock, defaultAccount: defaultAccount}
}

// ImportCSV parses a statement and inserts every row into a single account.
// Rows are never rejected; the whole batch commits or nothing does.
func (s *importService) ImportCSV(r io.Reader, accountName string) (*ImportResult, error) {
	rows, err := importer.Parse(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, "could not read CSV file"), err)
	}
	candidates := importer.NormalizeAll(rows, calendar.Today(s.clock))

	result := &ImportResult{AccountName: s.batchAccountName(accountName, candidates)}
	if len(candidates) == 0 {
		return result, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		account, created, err := findOrCreateAccount(tx, result.AccountName)
		if err != nil {
			return err
		}
		result.AccountID = account.ID
		result.AccountCreated = created

		resolver, err := newCategoryResolver(tx)
		if err != nil {
			return err
		}

		transactions := make([]models.Transaction, 0, len(candidates))
		for _, c := range candidates {
			categoryID, ok := resolver.lookup(c.CategoryName)
			if !ok {
				if categoryID, err = resolver.fallback(tx); err != nil {
					return err
				}
				result.CategoryFallbacks++
			}
			if c.DateDefaulted {
				result.DateFallbacks++
			}
			if c.AmountDefaulted {
				result.AmountFallbacks++
			}

			transactions = append(transactions, models.Transaction{
				Date:        dateOnly(c.Date),
				Type:        c.Type,
				CategoryID:  categoryID,
				AccountID:   account.ID,
				Amount:      c.Amount,
				Description: c.Description,
			})
		}

		if err := tx.Omit(clause.Associations).CreateInBatches(transactions, importBatchSize).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result.Imported = len(transactions)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("CSV import finished",
		"imported", result.Imported,
		"account", result.AccountName,
		"account_created", result.AccountCreated,
		"category_fallbacks", result.CategoryFallbacks,
		"date_fallbacks", result.DateFallbacks,
		"amount_fallbacks", result.AmountFallbacks,
	)
	return result, nil
}

// batchAccountName picks the request's account, then the first account named
// in the file, then the configured default.
func (s *importService) batchAccountName(requested string, candidates []importer.Candidate) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	for _, c := range candidates {
		if c.Account != "" {
			return c.Account
		}
	}
	return s.defaultAccount
}

func findOrCreateAccount(tx *gorm.DB, name string) (*models.Account, bool, error) {
	var account models.Account
	err := tx.Where("name = ?", name).First(&account).Error
	if err == nil {
		return &account, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account = models.Account{Name: name, Kind: models.AccountKindChecking, IsActive: true}
	if err := tx.Create(&account).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, true, nil
}

// categoryResolver maps imported category names to ids, exact match first
// and case-insensitive second.
type categoryResolver struct {
	exact      map[string]string
	folded     map[string]string
	fallbackID string
}

func newCategoryResolver(tx *gorm.DB) (*categoryResolver, error) {
	var categories []models.Category
	if err := tx.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	r := &categoryResolver{
		exact:  make(map[string]string, len(categories)),
		folded: make(map[string]string, len(categories)),
	}
	for _, c := range categories {
		r.exact[c.Name] = c.ID
		key := strings.ToLower(c.Name)
		if _, seen := r.folded[key]; !seen {
			r.folded[key] = c.ID
		}
	}
	return r, nil
}

func (r *categoryResolver) lookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if id, ok := r.exact[name]; ok {
		return id, true
	}
	id, ok := r.folded[strings.ToLower(name)]
	return id, ok
}

// fallback returns the "Contas" category, or the first active expense
// category by name when it does not exist.
func (r *categoryResolver) fallback(tx *gorm.DB) (string, error) {
	if r.fallbackID != "" {
		return r.fallbackID, nil
	}
	if id, ok := r.exact[FallbackCategoryName]; ok {
		r.fallbackID = id
		return id, nil
	}

	var category models.Category
	err := tx.Where("kind = ? AND is_active = ?", models.CategoryKindExpense, true).
		Order("name ASC").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.ErrNoFallbackCategory
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	r.fallbackID = category.ID
	return category.ID, nil
}
