package models

import "time"

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// DescriptionMaxLen is the longest description stored on a transaction.
const DescriptionMaxLen = 200

// Transaction is a single ledger entry. Amount is a non-negative magnitude;
// the sign is implied by Type.
type Transaction struct {
	Base
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	Type        TransactionType `gorm:"size:10;not null;index" json:"type"`
	CategoryID  string          `gorm:"type:uuid;not null;index" json:"category_id"`
	AccountID   string          `gorm:"type:uuid;not null;index" json:"account_id"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `gorm:"size:200" json:"description"`
	ReceiptKey  string          `gorm:"size:255" json:"receipt_key,omitempty"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
	Account  Account  `gorm:"foreignKey:AccountID" json:"account"`
}

// TruncateDescription trims s to DescriptionMaxLen runes.
func TruncateDescription(s string) string {
	r := []rune(s)
	if len(r) <= DescriptionMaxLen {
		return s
	}
	return string(r[:DescriptionMaxLen])
}
