package models

// AccountKind represents the type of account
type AccountKind string

const (
	AccountKindChecking AccountKind = "checking"
	AccountKindCredit   AccountKind = "credit"
	AccountKindCash     AccountKind = "cash"
	AccountKindSavings  AccountKind = "savings"
)

// Account represents a place money moves through. No balance is stored;
// balances are derived from transactions.
type Account struct {
	Base
	Name     string      `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Kind     AccountKind `gorm:"size:20;not null" json:"kind"`
	IsActive bool        `gorm:"not null;default:true" json:"is_active"`
}
