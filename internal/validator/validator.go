// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"financas/internal/calendar"
	"financas/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month", validateMonth)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_kind", validateCategoryKind)
		_ = v.RegisterValidation("account_kind", validateAccountKind)
		_ = v.RegisterValidation("user_role", validateUserRole)
	}
}

// validateMonth accepts YYYY-MM strings.
func validateMonth(fl validator.FieldLevel) bool {
	_, err := calendar.ParseMonth(fl.Field().String())
	return err == nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	switch models.CategoryKind(fl.Field().String()) {
	case models.CategoryKindIncome, models.CategoryKindExpense:
		return true
	}
	return false
}

func validateAccountKind(fl validator.FieldLevel) bool {
	switch models.AccountKind(fl.Field().String()) {
	case models.AccountKindChecking, models.AccountKindCredit, models.AccountKindCash, models.AccountKindSavings:
		return true
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	switch models.UserRole(fl.Field().String()) {
	case models.UserRoleAdmin, models.UserRoleUser:
		return true
	}
	return false
}
