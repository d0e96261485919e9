package services

import (
	"financas/internal/calendar"
	"financas/internal/models"
)

// ResolveBudgets computes the effective planned amount per category name for
// month. Templates seed the result; overrides for the same month replace
// them, with later overrides in the slice winning. Overrides for any other
// month are ignored, and categories with neither entry are absent.
//
// Both slices must have Category loaded so names are available.
func ResolveBudgets(month calendar.Month, templates []models.BudgetTemplate, overrides []models.Budget) map[string]float64 {
	effective := make(map[string]float64, len(templates))
	for _, t := range templates {
		effective[t.Category.Name] = t.PlannedAmount
	}

	target := month.String()
	for _, o := range overrides {
		if o.Month != target {
			continue
		}
		effective[o.Category.Name] = o.PlannedAmount
	}
	return effective
}
