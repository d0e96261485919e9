package services

import (
	"testing"

	"financas/internal/models"
	"financas/internal/testutil"
)

func validRecurringInput(categoryID, accountID string) RecurringInput {
	return RecurringInput{
		Name:        "Aluguel",
		Type:        models.TransactionTypeExpense,
		CategoryID:  categoryID,
		AccountID:   accountID,
		Amount:      1800,
		DayOfMonth:  5,
		Description: "Aluguel apartamento",
		IsActive:    true,
	}
}

func TestCreateRecurring(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)

		rec, err := svc.CreateRecurring(validRecurringInput(cat.ID, acct.ID))
		testutil.AssertNoError(t, err)
		if rec.ID == "" {
			t.Fatal("expected an id")
		}
		if rec.Category.ID != cat.ID || rec.Account.ID != acct.ID {
			t.Error("expected category and account to be loaded")
		}
		if rec.LastGeneratedMonth != nil {
			t.Error("expected no marker on a new definition")
		}
	})

	t.Run("inactive_is_persisted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)

		input := validRecurringInput(cat.ID, acct.ID)
		input.IsActive = false
		rec, err := svc.CreateRecurring(input)
		testutil.AssertNoError(t, err)
		if rec.IsActive {
			t.Error("expected definition to stay inactive")
		}

		var stored models.RecurringTransaction
		testutil.AssertNoError(t, db.First(&stored, "id = ?", rec.ID).Error)
		if stored.IsActive {
			t.Error("expected is_active=false in the database")
		}
	})

	tests := []struct {
		name   string
		mutate func(*RecurringInput)
		code   string
	}{
		{name: "day_zero", mutate: func(in *RecurringInput) { in.DayOfMonth = 0 }, code: "INVALID_DAY_OF_MONTH"},
		{name: "day_32", mutate: func(in *RecurringInput) { in.DayOfMonth = 32 }, code: "INVALID_DAY_OF_MONTH"},
		{name: "negative_amount", mutate: func(in *RecurringInput) { in.Amount = -1 }, code: "INVALID_AMOUNT"},
		{name: "bad_type", mutate: func(in *RecurringInput) { in.Type = "transfer" }, code: "INVALID_TRANSACTION_TYPE"},
		{name: "empty_name", mutate: func(in *RecurringInput) { in.Name = " " }, code: "INVALID_INPUT"},
		{name: "unknown_category", mutate: func(in *RecurringInput) { in.CategoryID = "missing" }, code: "CATEGORY_NOT_FOUND"},
		{name: "unknown_account", mutate: func(in *RecurringInput) { in.AccountID = "missing" }, code: "ACCOUNT_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			defer testutil.TeardownTestDB(t, db)
			svc := NewRecurringService(db)
			cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
			acct := testutil.CreateTestAccount(t, db)

			input := validRecurringInput(cat.ID, acct.ID)
			tt.mutate(&input)
			_, err := svc.CreateRecurring(input)
			testutil.AssertAppError(t, err, tt.code)
		})
	}
}

func TestRecurringLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewRecurringService(db)
	cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
	acct := testutil.CreateTestAccount(t, db)

	rec, err := svc.CreateRecurring(validRecurringInput(cat.ID, acct.ID))
	testutil.AssertNoError(t, err)

	t.Run("update", func(t *testing.T) {
		input := validRecurringInput(cat.ID, acct.ID)
		input.Amount = 1900
		input.DayOfMonth = 10
		updated, err := svc.UpdateRecurring(rec.ID, input)
		testutil.AssertNoError(t, err)
		if updated.Amount != 1900 || updated.DayOfMonth != 10 {
			t.Errorf("unexpected update %+v", updated)
		}
	})

	t.Run("list_filters_active", func(t *testing.T) {
		_, err := svc.SetRecurringActive(rec.ID, false)
		testutil.AssertNoError(t, err)

		active := true
		recs, err := svc.GetRecurrings(&active)
		testutil.AssertNoError(t, err)
		if len(recs) != 0 {
			t.Errorf("expected no active definitions, got %d", len(recs))
		}

		all, err := svc.GetRecurrings(nil)
		testutil.AssertNoError(t, err)
		if len(all) != 1 {
			t.Errorf("expected 1 definition, got %d", len(all))
		}
	})

	t.Run("delete", func(t *testing.T) {
		testutil.AssertNoError(t, svc.DeleteRecurring(rec.ID))
		_, err := svc.GetRecurringByID(rec.ID)
		testutil.AssertAppError(t, err, "RECURRING_NOT_FOUND")

		err = svc.DeleteRecurring(rec.ID)
		testutil.AssertAppError(t, err, "RECURRING_NOT_FOUND")
	})
}
