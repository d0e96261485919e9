package models

// CategoryKind classifies a category as income or expense.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Category represents a transaction category. Names are unique across the
// household.
type Category struct {
	Base
	Name     string       `gorm:"uniqueIndex;size:80;not null" json:"name"`
	Kind     CategoryKind `gorm:"size:10;not null" json:"kind"`
	IsActive bool         `gorm:"not null;default:true" json:"is_active"`
}
