package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"financas/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates an active user with a unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("user%d", nextID()), models.UserRoleUser)
}

// CreateTestAdmin creates an active admin user with a unique username.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("admin%d", nextID()), models.UserRoleAdmin)
}

// CreateTestUserWithRole creates a user with the given username and role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Name:     "Test " + username,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates an active category of the given kind with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind) *models.Category {
	t.Helper()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("Test Category %d", nextID()), kind)
}

// CreateTestCategoryNamed creates an active category with the given name.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string, kind models.CategoryKind) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Kind: kind, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestAccount creates an active checking account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountNamed(t, db, fmt.Sprintf("Test Account %d", nextID()))
}

// CreateTestAccountNamed creates an active checking account with the given name.
func CreateTestAccountNamed(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()

	account := &models.Account{Name: name, Kind: models.AccountKindChecking, IsActive: true}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID, accountID string, txType models.TransactionType, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:        date,
		Type:        txType,
		CategoryID:  categoryID,
		AccountID:   accountID,
		Amount:      amount,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestTemplate creates a budget template for the category.
func CreateTestTemplate(t *testing.T, db *gorm.DB, categoryID string, planned float64) *models.BudgetTemplate {
	t.Helper()

	template := &models.BudgetTemplate{CategoryID: categoryID, PlannedAmount: planned}
	if err := db.Create(template).Error; err != nil {
		t.Fatalf("failed to create test budget template: %v", err)
	}
	return template
}

// CreateTestOverride creates a monthly budget override for the category.
func CreateTestOverride(t *testing.T, db *gorm.DB, month, categoryID string, planned float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{Month: month, CategoryID: categoryID, PlannedAmount: planned}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget override: %v", err)
	}
	return budget
}

// CreateTestRecurring creates an active recurring definition.
func CreateTestRecurring(t *testing.T, db *gorm.DB, categoryID, accountID string, amount float64, day int) *models.RecurringTransaction {
	t.Helper()

	rec := &models.RecurringTransaction{
		Name:       fmt.Sprintf("Test Recurring %d", nextID()),
		Type:       models.TransactionTypeExpense,
		CategoryID: categoryID,
		AccountID:  accountID,
		Amount:     amount,
		DayOfMonth: day,
		IsActive:   true,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("failed to create test recurring transaction: %v", err)
	}
	return rec
}
