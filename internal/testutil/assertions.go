package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "financas/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertAmount compares two money values to the cent.
func AssertAmount(t *testing.T, label string, got, want float64) {
	t.Helper()

	g := decimal.NewFromFloat(got).Round(2)
	w := decimal.NewFromFloat(want).Round(2)
	if !g.Equal(w) {
		t.Errorf("%s: expected %s, got %s", label, w.StringFixed(2), g.StringFixed(2))
	}
}
