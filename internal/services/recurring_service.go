package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/logger"
	"financas/internal/models"
)

// recurringService handles recurring definitions and monthly generation.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

func (s *recurringService) validate(input *RecurringInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = models.TruncateDescription(strings.TrimSpace(input.Description))

	if input.Name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !validTransactionType(input.Type) {
		return apperrors.ErrInvalidTransactionType
	}
	if input.Amount < 0 {
		return apperrors.ErrInvalidAmount
	}
	if input.DayOfMonth < 1 || input.DayOfMonth > 31 {
		return apperrors.ErrInvalidDayOfMonth
	}
	if _, err := findCategory(s.db, input.CategoryID); err != nil {
		return err
	}
	if _, err := findAccount(s.db, input.AccountID); err != nil {
		return err
	}
	return nil
}

// CreateRecurring creates a new recurring definition.
func (s *recurringService) CreateRecurring(input RecurringInput) (*models.RecurringTransaction, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	rec := &models.RecurringTransaction{
		Name:        input.Name,
		Type:        input.Type,
		CategoryID:  input.CategoryID,
		AccountID:   input.AccountID,
		Amount:      input.Amount,
		DayOfMonth:  input.DayOfMonth,
		Description: input.Description,
		IsActive:    input.IsActive,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		// The column default would otherwise turn a paused definition active.
		if !input.IsActive {
			return tx.Model(rec).Update("is_active", false).Error
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetRecurringByID(rec.ID)
}

// GetRecurrings lists definitions ordered by day of month and name.
func (s *recurringService) GetRecurrings(activeOnly *bool) ([]models.RecurringTransaction, error) {
	q := s.db.Preload("Category").Preload("Account")
	if activeOnly != nil {
		q = q.Where("is_active = ?", *activeOnly)
	}

	var recs []models.RecurringTransaction
	if err := q.Order("day_of_month ASC").Order("name ASC").Find(&recs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recs, nil
}

// GetRecurringByID returns a definition with its category and account.
func (s *recurringService) GetRecurringByID(recurringID string) (*models.RecurringTransaction, error) {
	var rec models.RecurringTransaction
	if err := s.db.Preload("Category").Preload("Account").Where("id = ?", recurringID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rec, nil
}

// UpdateRecurring replaces a definition's fields. Transactions generated
// before the change are left untouched.
func (s *recurringService) UpdateRecurring(recurringID string, input RecurringInput) (*models.RecurringTransaction, error) {
	rec, err := s.GetRecurringByID(recurringID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         input.Name,
		"type":         input.Type,
		"category_id":  input.CategoryID,
		"account_id":   input.AccountID,
		"amount":       input.Amount,
		"day_of_month": input.DayOfMonth,
		"description":  input.Description,
		"is_active":    input.IsActive,
	}
	if err := s.db.Model(&models.RecurringTransaction{}).Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetRecurringByID(rec.ID)
}

// SetRecurringActive toggles whether a definition takes part in generation.
func (s *recurringService) SetRecurringActive(recurringID string, active bool) (*models.RecurringTransaction, error) {
	rec, err := s.GetRecurringByID(recurringID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.RecurringTransaction{}).Where("id = ?", rec.ID).Update("is_active", active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	rec.IsActive = active
	return rec, nil
}

// DeleteRecurring soft-deletes a definition. Generated transactions stay.
func (s *recurringService) DeleteRecurring(recurringID string) error {
	rec, err := s.GetRecurringByID(recurringID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.RecurringTransaction{}, "id = ?", rec.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GenerateForMonth ensures every active definition has exactly one ledger
// transaction in month. Each definition is handled in its own database
// transaction so one failure does not undo the others already done.
func (s *recurringService) GenerateForMonth(month calendar.Month) (*RecurringRunSummary, error) {
	if month.IsZero() {
		return nil, apperrors.ErrInvalidMonth
	}

	var defs []models.RecurringTransaction
	if err := s.db.Where("is_active = ?", true).Order("created_at ASC, id ASC").Find(&defs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &RecurringRunSummary{Month: month.String()}
	for i := range defs {
		def := &defs[i]
		var outcome generationOutcome
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			outcome, txErr = generateOne(tx, def, month)
			return txErr
		})
		if err != nil {
			logger.Get().Errorw("Recurring generation failed",
				"recurring_id", def.ID,
				"month", summary.Month,
				"error", err,
			)
			return nil, err
		}

		switch outcome {
		case outcomeGenerated:
			summary.Generated++
		case outcomeResynced:
			summary.Resynced++
		default:
			summary.Skipped++
		}
	}

	logger.Get().Infow("Recurring generation finished",
		"month", summary.Month,
		"generated", summary.Generated,
		"resynced", summary.Resynced,
		"skipped", summary.Skipped,
	)
	return summary, nil
}
