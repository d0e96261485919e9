package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/models"
)

// RecurrenceTag is the marker embedded in the description of every
// transaction generated from the definition with the given id.
func RecurrenceTag(recurringID string) string {
	return "[REC:" + recurringID + "]"
}

// RecurringDescription builds the description of a generated transaction:
// the definition's description (or its name when empty) followed by the
// recurrence tag. The text part is shortened so the tag always fits.
func RecurringDescription(def *models.RecurringTransaction) string {
	base := strings.TrimSpace(def.Description)
	if base == "" {
		base = strings.TrimSpace(def.Name)
	}
	tag := RecurrenceTag(def.ID)

	room := models.DescriptionMaxLen - len([]rune(tag)) - 1
	if room <= 0 {
		return models.TruncateDescription(tag)
	}
	if r := []rune(base); len(r) > room {
		base = strings.TrimSpace(string(r[:room]))
	}
	if base == "" {
		return tag
	}
	return base + " " + tag
}

// RecurringOccurrence is the date a definition falls on in month, with day
// clamped to the month's length.
func RecurringOccurrence(month calendar.Month, dayOfMonth int) time.Time {
	return month.Date(dayOfMonth)
}

type generationOutcome int

const (
	outcomeSkipped generationOutcome = iota
	outcomeResynced
	outcomeGenerated
)

// generateOne materializes def for month inside tx. The (recurring_id,
// month) claim in recurring_runs guarantees at most one generated
// transaction per definition and month even when runs overlap.
func generateOne(tx *gorm.DB, def *models.RecurringTransaction, month calendar.Month) (generationOutcome, error) {
	target := month.String()
	if def.LastGeneratedMonth != nil && *def.LastGeneratedMonth == target {
		return outcomeSkipped, nil
	}

	run := &models.RecurringRun{RecurringID: def.ID, Month: target}
	claim := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(run)
	if claim.Error != nil {
		return outcomeSkipped, apperrors.Wrap(apperrors.ErrInternalServer, claim.Error)
	}
	if claim.RowsAffected == 0 {
		return outcomeSkipped, advanceMarker(tx, def, target)
	}

	date := RecurringOccurrence(month, def.DayOfMonth)
	outcome := outcomeResynced

	var existing models.Transaction
	err := tx.Where("type = ? AND category_id = ? AND account_id = ? AND amount = ? AND date = ? AND description LIKE ?",
		def.Type, def.CategoryID, def.AccountID, def.Amount, date, "%"+RecurrenceTag(def.ID)+"%").
		First(&existing).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = models.Transaction{
			Date:        date,
			Type:        def.Type,
			CategoryID:  def.CategoryID,
			AccountID:   def.AccountID,
			Amount:      def.Amount,
			Description: RecurringDescription(def),
		}
		if err := tx.Omit(clause.Associations).Create(&existing).Error; err != nil {
			return outcomeSkipped, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		outcome = outcomeGenerated
	default:
		return outcomeSkipped, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := tx.Model(run).Update("transaction_id", existing.ID).Error; err != nil {
		return outcomeSkipped, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return outcome, advanceMarker(tx, def, target)
}

func advanceMarker(tx *gorm.DB, def *models.RecurringTransaction, target string) error {
	err := tx.Model(&models.RecurringTransaction{}).
		Where("id = ?", def.ID).
		Update("last_generated_month", target).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("advance marker of %s: %w", def.ID, err))
	}
	def.LastGeneratedMonth = &target
	return nil
}
