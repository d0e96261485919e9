package services

import (
	"testing"
	"time"

	"financas/internal/calendar"
	"financas/internal/models"
	"financas/internal/testutil"
)

func TestSetTemplate(t *testing.T) {
	t.Run("creates_then_replaces", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		first, err := svc.SetTemplate(cat.ID, 500)
		testutil.AssertNoError(t, err)
		if first.PlannedAmount != 500 || first.Category.Name != cat.Name {
			t.Errorf("unexpected template %+v", first)
		}

		second, err := svc.SetTemplate(cat.ID, 650)
		testutil.AssertNoError(t, err)
		if second.PlannedAmount != 650 {
			t.Errorf("expected 650, got %v", second.PlannedAmount)
		}
		if second.ID != first.ID {
			t.Error("expected the same template row to be updated")
		}

		var count int64
		db.Model(&models.BudgetTemplate{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 template, got %d", count)
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		_, err := svc.SetTemplate(cat.ID, -1)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.SetTemplate("00000000-0000-0000-0000-000000000000", 10)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteTemplate(t *testing.T) {
	t.Run("deletes_and_allows_recreate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		testutil.CreateTestTemplate(t, db, cat.ID, 100)

		testutil.AssertNoError(t, svc.DeleteTemplate(cat.ID))

		templates, err := svc.GetTemplates()
		testutil.AssertNoError(t, err)
		if len(templates) != 0 {
			t.Errorf("expected no templates, got %d", len(templates))
		}

		_, err = svc.SetTemplate(cat.ID, 200)
		testutil.AssertNoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		err := svc.DeleteTemplate(cat.ID)
		testutil.AssertAppError(t, err, "BUDGET_TEMPLATE_NOT_FOUND")
	})
}

func TestOverrides(t *testing.T) {
	march := calendar.MustParseMonth("2024-03")

	t.Run("upsert_per_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		_, err := svc.SetOverride(march, cat.ID, 300)
		testutil.AssertNoError(t, err)
		saved, err := svc.SetOverride(march, cat.ID, 350)
		testutil.AssertNoError(t, err)
		if saved.PlannedAmount != 350 || saved.Month != "2024-03" {
			t.Errorf("unexpected override %+v", saved)
		}
		_, err = svc.SetOverride(march.Next(), cat.ID, 999)
		testutil.AssertNoError(t, err)

		overrides, err := svc.GetOverrides(march)
		testutil.AssertNoError(t, err)
		if len(overrides) != 1 || overrides[0].PlannedAmount != 350 {
			t.Errorf("expected a single 350 override, got %+v", overrides)
		}
	})

	t.Run("delete_restores_template", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		testutil.CreateTestTemplate(t, db, cat.ID, 100)
		testutil.CreateTestOverride(t, db, "2024-03", cat.ID, 400)

		effective, err := svc.GetEffectiveBudgets(march)
		testutil.AssertNoError(t, err)
		if effective[cat.Name] != 400 {
			t.Fatalf("expected override 400, got %v", effective[cat.Name])
		}

		testutil.AssertNoError(t, svc.DeleteOverride(march, cat.ID))

		effective, err = svc.GetEffectiveBudgets(march)
		testutil.AssertNoError(t, err)
		if effective[cat.Name] != 100 {
			t.Errorf("expected template 100, got %v", effective[cat.Name])
		}

		err = svc.DeleteOverride(march, cat.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("zero_month_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		_, err := svc.SetOverride(calendar.Month{}, cat.ID, 10)
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})
}

func TestGetBudgetProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	march := calendar.MustParseMonth("2024-03")

	mercado := testutil.CreateTestCategoryNamed(t, db, "Mercado", models.CategoryKindExpense)
	lazer := testutil.CreateTestCategoryNamed(t, db, "Lazer", models.CategoryKindExpense)
	acct := testutil.CreateTestAccount(t, db)
	testutil.CreateTestTemplate(t, db, mercado.ID, 1000)
	testutil.CreateTestTemplate(t, db, lazer.ID, 200)
	testutil.CreateTestOverride(t, db, "2024-03", lazer.ID, 400)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	testutil.CreateTestTransaction(t, db, mercado.ID, acct.ID, models.TransactionTypeExpense, 250, day(3))
	testutil.CreateTestTransaction(t, db, mercado.ID, acct.ID, models.TransactionTypeExpense, 250, day(31))
	testutil.CreateTestTransaction(t, db, mercado.ID, acct.ID, models.TransactionTypeIncome, 90, day(10))
	testutil.CreateTestTransaction(t, db, mercado.ID, acct.ID, models.TransactionTypeExpense, 70, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	progress, err := svc.GetBudgetProgress(march)
	testutil.AssertNoError(t, err)
	if len(progress) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(progress))
	}

	if progress[0].CategoryName != "Lazer" || progress[1].CategoryName != "Mercado" {
		t.Fatalf("expected entries sorted by name, got %s, %s", progress[0].CategoryName, progress[1].CategoryName)
	}

	l := progress[0]
	if l.Planned != 400 || !l.Overridden || l.Spent != 0 || l.Remaining != 400 {
		t.Errorf("unexpected Lazer progress %+v", l)
	}

	m := progress[1]
	if m.Planned != 1000 || m.Overridden {
		t.Errorf("unexpected Mercado plan %+v", m)
	}
	if m.Spent != 500 {
		t.Errorf("expected spent 500, got %v", m.Spent)
	}
	if m.Remaining != 500 || m.Percentage != 50 {
		t.Errorf("expected 500 remaining at 50%%, got %v at %v", m.Remaining, m.Percentage)
	}
	if m.CategoryID != mercado.ID {
		t.Errorf("expected category id %s, got %s", mercado.ID, m.CategoryID)
	}
}
