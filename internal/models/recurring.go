package models

import (
	"time"

	"financas/internal/uuid"

	"gorm.io/gorm"
)

// RecurringTransaction defines a transaction generated once per month on
// DayOfMonth (clamped to the month's length).
type RecurringTransaction struct {
	Base
	Name               string          `gorm:"size:120;not null" json:"name"`
	Type               TransactionType `gorm:"size:10;not null" json:"type"`
	CategoryID         string          `gorm:"type:uuid;not null" json:"category_id"`
	AccountID          string          `gorm:"type:uuid;not null" json:"account_id"`
	Amount             float64         `gorm:"not null" json:"amount"`
	DayOfMonth         int             `gorm:"not null" json:"day_of_month"`
	Description        string          `gorm:"size:200" json:"description"`
	IsActive           bool            `gorm:"not null;default:true;index" json:"is_active"`
	LastGeneratedMonth *string         `gorm:"size:7" json:"last_generated_month,omitempty"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
	Account  Account  `gorm:"foreignKey:AccountID" json:"account"`
}

// RecurringRun records that a definition has been materialized for a month.
// The unique (recurring_id, month) index makes generation idempotent even
// when two runs race.
type RecurringRun struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	RecurringID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_recurring_runs_recurring_month" json:"recurring_id"`
	Month         string    `gorm:"size:7;not null;uniqueIndex:idx_recurring_runs_recurring_month" json:"month"`
	TransactionID *string   `gorm:"type:uuid" json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new runs
func (r *RecurringRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New()
	}
	return nil
}
