package services

import (
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"financas/internal/calendar"
	apperrors "financas/internal/errors"
	"financas/internal/models"
)

// budgetService handles budget templates and monthly overrides.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// SetTemplate creates or replaces the default planned amount for a category.
func (s *budgetService) SetTemplate(categoryID string, planned float64) (*models.BudgetTemplate, error) {
	if planned < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "planned amount must be zero or greater")
	}
	if _, err := findCategory(s.db, categoryID); err != nil {
		return nil, err
	}

	template := &models.BudgetTemplate{CategoryID: categoryID, PlannedAmount: planned}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"planned_amount", "updated_at"}),
	}).Omit(clause.Associations).Create(template).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var saved models.BudgetTemplate
	if err := s.db.Preload("Category").Where("category_id = ?", categoryID).First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// DeleteTemplate removes the template of a category.
func (s *budgetService) DeleteTemplate(categoryID string) error {
	result := s.db.Unscoped().Where("category_id = ?", categoryID).Delete(&models.BudgetTemplate{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetTemplateNotFound
	}
	return nil
}

// GetTemplates returns every template ordered by category name.
func (s *budgetService) GetTemplates() ([]models.BudgetTemplate, error) {
	var templates []models.BudgetTemplate
	if err := s.db.Preload("Category").Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Category.Name < templates[j].Category.Name
	})
	return templates, nil
}

// SetOverride creates or replaces the planned amount of a category for one month.
func (s *budgetService) SetOverride(month calendar.Month, categoryID string, planned float64) (*models.Budget, error) {
	if planned < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "planned amount must be zero or greater")
	}
	if month.IsZero() {
		return nil, apperrors.ErrInvalidMonth
	}
	if _, err := findCategory(s.db, categoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{Month: month.String(), CategoryID: categoryID, PlannedAmount: planned}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"planned_amount", "updated_at"}),
	}).Omit(clause.Associations).Create(budget).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var saved models.Budget
	if err := s.db.Preload("Category").
		Where("month = ? AND category_id = ?", month.String(), categoryID).
		First(&saved).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &saved, nil
}

// DeleteOverride removes a monthly override so the template applies again.
func (s *budgetService) DeleteOverride(month calendar.Month, categoryID string) error {
	result := s.db.Unscoped().
		Where("month = ? AND category_id = ?", month.String(), categoryID).
		Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// GetOverrides returns the overrides of a month ordered by category name.
func (s *budgetService) GetOverrides(month calendar.Month) ([]models.Budget, error) {
	var overrides []models.Budget
	if err := s.db.Preload("Category").Where("month = ?", month.String()).Find(&overrides).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].Category.Name < overrides[j].Category.Name
	})
	return overrides, nil
}

// GetEffectiveBudgets resolves templates and overrides for month.
func (s *budgetService) GetEffectiveBudgets(month calendar.Month) (map[string]float64, error) {
	templates, overrides, err := s.load(month)
	if err != nil {
		return nil, err
	}
	return ResolveBudgets(month, templates, overrides), nil
}

// GetBudgetProgress compares each budgeted category's plan with its expense
// total for month.
func (s *budgetService) GetBudgetProgress(month calendar.Month) ([]BudgetProgress, error) {
	templates, overrides, err := s.load(month)
	if err != nil {
		return nil, err
	}
	effective := ResolveBudgets(month, templates, overrides)

	categoryIDs := make(map[string]string, len(effective))
	for _, t := range templates {
		categoryIDs[t.Category.Name] = t.CategoryID
	}
	overridden := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		categoryIDs[o.Category.Name] = o.CategoryID
		overridden[o.Category.Name] = true
	}

	spent, err := expenseTotalsByCategory(s.db, month.FirstDay(), month.NextFirstDay())
	if err != nil {
		return nil, err
	}

	progress := make([]BudgetProgress, 0, len(effective))
	for name, planned := range effective {
		id := categoryIDs[name]
		p := BudgetProgress{
			CategoryID:   id,
			CategoryName: name,
			Planned:      planned,
			Spent:        spent[id],
			Remaining:    planned - spent[id],
			Overridden:   overridden[name],
		}
		if planned > 0 {
			p.Percentage = spent[id] / planned * 100
		}
		progress = append(progress, p)
	}
	sort.Slice(progress, func(i, j int) bool {
		return progress[i].CategoryName < progress[j].CategoryName
	})
	return progress, nil
}

func (s *budgetService) load(month calendar.Month) ([]models.BudgetTemplate, []models.Budget, error) {
	var templates []models.BudgetTemplate
	if err := s.db.Preload("Category").Find(&templates).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var overrides []models.Budget
	if err := s.db.Preload("Category").
		Where("month = ?", month.String()).
		Order("updated_at ASC").
		Find(&overrides).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return templates, overrides, nil
}

// expenseTotalsByCategory sums expense amounts per category id for
// transactions dated in [from, to).
func expenseTotalsByCategory(db *gorm.DB, from, to time.Time) (map[string]float64, error) {
	type row struct {
		CategoryID string
		Total      float64
	}
	var rows []row
	err := db.Model(&models.Transaction{}).
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Where("type = ? AND date >= ? AND date < ?", models.TransactionTypeExpense, from, to).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.CategoryID] = r.Total
	}
	return totals, nil
}
