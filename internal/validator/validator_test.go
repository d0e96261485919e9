package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Month    string `validate:"omitempty,month"`
	Type     string `validate:"omitempty,transaction_type"`
	Category string `validate:"omitempty,category_kind"`
	Account  string `validate:"omitempty,account_kind"`
	Role     string `validate:"omitempty,user_role"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	for tag, fn := range map[string]validator.Func{
		"month":            validateMonth,
		"transaction_type": validateTransactionType,
		"category_kind":    validateCategoryKind,
		"account_kind":     validateAccountKind,
		"user_role":        validateUserRole,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			t.Fatalf("failed to register %s: %v", tag, err)
		}
	}
	return v
}

func TestValidators(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name    string
		input   sample
		wantErr bool
	}{
		{name: "all_valid", input: sample{Month: "2024-03", Type: "expense", Category: "income", Account: "savings", Role: "admin"}},
		{name: "empty_is_allowed", input: sample{}},
		{name: "bad_month", input: sample{Month: "03/2024"}, wantErr: true},
		{name: "month_out_of_range", input: sample{Month: "2024-13"}, wantErr: true},
		{name: "transfer_not_supported", input: sample{Type: "transfer"}, wantErr: true},
		{name: "bad_category_kind", input: sample{Category: "other"}, wantErr: true},
		{name: "bad_account_kind", input: sample{Account: "investment"}, wantErr: true},
		{name: "bad_role", input: sample{Role: "root"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
