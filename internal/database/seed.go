package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"financas/internal/logger"
	"financas/internal/models"
)

// SeedOptions carries the initial passwords for the default users.
type SeedOptions struct {
	AdminPassword string
	UserPassword  string
}

type seedCategory struct {
	Name string
	Kind models.CategoryKind
}

// DefaultCategories are created when the categories table is empty.
var DefaultCategories = []seedCategory{
	{"Salário", models.CategoryKindIncome},
	{"Extra/Bônus", models.CategoryKindIncome},
	{"Reembolso", models.CategoryKindIncome},
	{"Moradia", models.CategoryKindExpense},
	{"Contas", models.CategoryKindExpense},
	{"Mercado", models.CategoryKindExpense},
	{"Transporte", models.CategoryKindExpense},
	{"Saúde", models.CategoryKindExpense},
	{"Escola/Crianças", models.CategoryKindExpense},
	{"Alimentação fora", models.CategoryKindExpense},
	{"Lazer", models.CategoryKindExpense},
	{"Compras", models.CategoryKindExpense},
	{"Serviços", models.CategoryKindExpense},
	{"Cartão (pagamento)", models.CategoryKindExpense},
	{"Poupança/Reserva", models.CategoryKindExpense},
}

type seedAccount struct {
	Name string
	Kind models.AccountKind
}

// DefaultAccounts are created when the accounts table is empty.
var DefaultAccounts = []seedAccount{
	{"Conta Corrente", models.AccountKindChecking},
	{"Cartão de Crédito", models.AccountKindCredit},
	{"Dinheiro", models.AccountKindCash},
	{"Poupança", models.AccountKindSavings},
}

// Seed fills empty tables with the household defaults. Each table is only
// seeded when it has no rows, so running Seed repeatedly is safe.
func Seed(db *gorm.DB, opts SeedOptions) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedUsers(tx, opts); err != nil {
			return err
		}
		if err := seedCategories(tx); err != nil {
			return err
		}
		if err := seedAccounts(tx); err != nil {
			return err
		}
		return seedBudgetTemplates(tx)
	})
}

func isEmpty(tx *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedUsers(tx *gorm.DB, opts SeedOptions) error {
	empty, err := isEmpty(tx, &models.User{})
	if err != nil || !empty {
		return err
	}

	users := []struct {
		username, name, password string
		role                     models.UserRole
	}{
		{"admin", "Administrador", opts.AdminPassword, models.UserRoleAdmin},
		{"esposa", "Esposa", opts.UserPassword, models.UserRoleUser},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := &models.User{
			Username: u.username,
			Name:     u.name,
			Password: string(hash),
			Role:     u.role,
			IsActive: true,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.username, err)
		}
	}
	logger.Get().Infow("Seeded default users", "count", len(users))
	return nil
}

func seedCategories(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &models.Category{})
	if err != nil || !empty {
		return err
	}

	categories := make([]models.Category, 0, len(DefaultCategories))
	for _, c := range DefaultCategories {
		categories = append(categories, models.Category{Name: c.Name, Kind: c.Kind, IsActive: true})
	}
	if err := tx.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	logger.Get().Infow("Seeded default categories", "count", len(categories))
	return nil
}

func seedAccounts(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &models.Account{})
	if err != nil || !empty {
		return err
	}

	accounts := make([]models.Account, 0, len(DefaultAccounts))
	for _, a := range DefaultAccounts {
		accounts = append(accounts, models.Account{Name: a.Name, Kind: a.Kind, IsActive: true})
	}
	if err := tx.Create(&accounts).Error; err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}
	logger.Get().Infow("Seeded default accounts", "count", len(accounts))
	return nil
}

// seedBudgetTemplates copies the expense overrides of the most recent
// budgeted month into templates, or creates a zero template for every
// active expense category when no override exists.
func seedBudgetTemplates(tx *gorm.DB) error {
	empty, err := isEmpty(tx, &models.BudgetTemplate{})
	if err != nil || !empty {
		return err
	}

	var latest models.Budget
	result := tx.Order("month DESC").Limit(1).Find(&latest)
	if result.Error != nil {
		return result.Error
	}

	var templates []models.BudgetTemplate
	if result.RowsAffected > 0 {
		var overrides []models.Budget
		if err := tx.Preload("Category").Where("month = ?", latest.Month).Find(&overrides).Error; err != nil {
			return err
		}
		for _, b := range overrides {
			if b.Category.Kind == models.CategoryKindExpense {
				templates = append(templates, models.BudgetTemplate{CategoryID: b.CategoryID, PlannedAmount: b.PlannedAmount})
			}
		}
	} else {
		var expenses []models.Category
		if err := tx.Where("kind = ? AND is_active = ?", models.CategoryKindExpense, true).Order("name").Find(&expenses).Error; err != nil {
			return err
		}
		for _, c := range expenses {
			templates = append(templates, models.BudgetTemplate{CategoryID: c.ID, PlannedAmount: 0})
		}
	}

	if len(templates) == 0 {
		return nil
	}
	if err := tx.Create(&templates).Error; err != nil {
		return fmt.Errorf("failed to seed budget templates: %w", err)
	}
	logger.Get().Infow("Seeded budget templates", "count", len(templates))
	return nil
}
