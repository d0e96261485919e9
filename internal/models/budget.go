package models

// BudgetTemplate is the default planned amount for a category, applied to
// every month that has no override. Rows are hard-deleted like Budget.
type BudgetTemplate struct {
	Base
	CategoryID    string  `gorm:"type:uuid;uniqueIndex;not null" json:"category_id"`
	PlannedAmount float64 `gorm:"not null;default:0" json:"planned_amount"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}

// Budget is a per-month override of a category's planned amount. Rows are
// hard-deleted so the (month, category) index never collides with a
// soft-deleted row.
type Budget struct {
	Base
	Month         string  `gorm:"size:7;not null;uniqueIndex:idx_budgets_month_category" json:"month"`
	CategoryID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_month_category" json:"category_id"`
	PlannedAmount float64 `gorm:"not null;default:0" json:"planned_amount"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}
