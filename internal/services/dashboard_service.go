package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/models"
)

// dashboardService computes monthly totals.
type dashboardService struct {
	db      *gorm.DB
	budgets BudgetServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, budgets BudgetServicer) DashboardServicer {
	return &dashboardService{db: db, budgets: budgets}
}

// GetMonthSummary loads the month's transactions and effective budgets and
// summarizes them.
func (s *dashboardService) GetMonthSummary(month calendar.Month) (*MonthSummary, error) {
	effective, err := s.budgets.GetEffectiveBudgets(month)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("date >= ? AND date < ?", month.FirstDay(), month.NextFirstDay()).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := SummarizeMonth(month, transactions, effective)
	return &summary, nil
}

// SummarizeMonth totals income and expense for month and compares expense on
// budgeted categories with the planned total. Transactions dated outside
// month are ignored. ByCategory holds expense totals per category name.
func SummarizeMonth(month calendar.Month, transactions []models.Transaction, effective map[string]float64) MonthSummary {
	var income, expense, spent, planned decimal.Decimal
	byCategory := make(map[string]decimal.Decimal)
	count := 0

	for _, t := range transactions {
		if !month.Contains(t.Date) {
			continue
		}
		count++
		amount := decimal.NewFromFloat(t.Amount)

		switch t.Type {
		case models.TransactionTypeIncome:
			income = income.Add(amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(amount)
			byCategory[t.Category.Name] = byCategory[t.Category.Name].Add(amount)
			if _, budgeted := effective[t.Category.Name]; budgeted {
				spent = spent.Add(amount)
			}
		}
	}
	for _, p := range effective {
		planned = planned.Add(decimal.NewFromFloat(p))
	}

	totals := make(map[string]float64, len(byCategory))
	for name, total := range byCategory {
		totals[name] = total.InexactFloat64()
	}

	return MonthSummary{
		Month:            month.String(),
		Income:           income.InexactFloat64(),
		Expense:          expense.InexactFloat64(),
		Balance:          income.Sub(expense).InexactFloat64(),
		Planned:          planned.InexactFloat64(),
		Spent:            spent.InexactFloat64(),
		BudgetBalance:    planned.Sub(spent).InexactFloat64(),
		ByCategory:       totals,
		TransactionCount: count,
	}
}
