package services

import (
	"strings"
	"testing"
	"time"

	"financas/internal/calendar"
	"financas/internal/models"
	"financas/internal/testutil"
)

func TestRecurringDescription(t *testing.T) {
	t.Run("uses_description", func(t *testing.T) {
		def := &models.RecurringTransaction{Base: models.Base{ID: "abc"}, Name: "Aluguel", Description: "Aluguel apto"}
		if got := RecurringDescription(def); got != "Aluguel apto [REC:abc]" {
			t.Errorf("unexpected %q", got)
		}
	})

	t.Run("falls_back_to_name", func(t *testing.T) {
		def := &models.RecurringTransaction{Base: models.Base{ID: "abc"}, Name: "Internet", Description: "  "}
		if got := RecurringDescription(def); got != "Internet [REC:abc]" {
			t.Errorf("unexpected %q", got)
		}
	})

	t.Run("long_text_keeps_tag", func(t *testing.T) {
		id := "01890a5d-ac96-774b-bcce-b302099a8057"
		def := &models.RecurringTransaction{Base: models.Base{ID: id}, Name: "x", Description: strings.Repeat("a", 300)}
		got := RecurringDescription(def)
		if len([]rune(got)) > models.DescriptionMaxLen {
			t.Errorf("expected at most %d runes, got %d", models.DescriptionMaxLen, len([]rune(got)))
		}
		if !strings.HasSuffix(got, RecurrenceTag(id)) {
			t.Errorf("expected tag suffix, got %q", got)
		}
	})
}

func TestRecurringOccurrence(t *testing.T) {
	tests := []struct {
		month string
		day   int
		want  time.Time
	}{
		{month: "2024-02", day: 31, want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{month: "2023-02", day: 31, want: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{month: "2024-04", day: 31, want: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{month: "2024-01", day: 15, want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got := RecurringOccurrence(calendar.MustParseMonth(tt.month), tt.day)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGenerateForMonth(t *testing.T) {
	feb := calendar.MustParseMonth("2024-02")

	t.Run("generates_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)
		rec := testutil.CreateTestRecurring(t, db, cat.ID, acct.ID, 1500, 31)

		summary, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Generated != 1 || summary.Skipped != 0 || summary.Resynced != 0 {
			t.Errorf("unexpected summary %+v", summary)
		}

		summary, err = svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Generated != 0 || summary.Skipped != 1 {
			t.Errorf("expected second run to skip, got %+v", summary)
		}

		var txns []models.Transaction
		db.Find(&txns)
		if len(txns) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txns))
		}
		got := txns[0]
		if !got.Date.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected clamped date 2024-02-29, got %s", got.Date)
		}
		if got.Amount != 1500 || got.Type != models.TransactionTypeExpense || got.CategoryID != cat.ID || got.AccountID != acct.ID {
			t.Errorf("unexpected transaction %+v", got)
		}
		if !strings.Contains(got.Description, RecurrenceTag(rec.ID)) {
			t.Errorf("expected recurrence tag in %q", got.Description)
		}

		reloaded, err := svc.GetRecurringByID(rec.ID)
		testutil.AssertNoError(t, err)
		if reloaded.LastGeneratedMonth == nil || *reloaded.LastGeneratedMonth != "2024-02" {
			t.Errorf("expected marker 2024-02, got %v", reloaded.LastGeneratedMonth)
		}

		var run models.RecurringRun
		testutil.AssertNoError(t, db.Where("recurring_id = ? AND month = ?", rec.ID, "2024-02").First(&run).Error)
		if run.TransactionID == nil || *run.TransactionID != got.ID {
			t.Errorf("expected run linked to %s, got %v", got.ID, run.TransactionID)
		}
	})

	t.Run("claimed_month_not_regenerated_after_marker_reset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)
		rec := testutil.CreateTestRecurring(t, db, cat.ID, acct.ID, 80, 5)

		_, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)

		db.Model(&models.RecurringTransaction{}).Where("id = ?", rec.ID).Update("last_generated_month", nil)
		db.Where("1 = 1").Delete(&models.Transaction{})

		summary, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Skipped != 1 || summary.Generated != 0 {
			t.Errorf("expected claimed month to be skipped, got %+v", summary)
		}

		reloaded, _ := svc.GetRecurringByID(rec.ID)
		if reloaded.LastGeneratedMonth == nil || *reloaded.LastGeneratedMonth != "2024-02" {
			t.Errorf("expected marker to advance, got %v", reloaded.LastGeneratedMonth)
		}
	})

	t.Run("resyncs_tagged_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)
		rec := testutil.CreateTestRecurring(t, db, cat.ID, acct.ID, 120, 10)

		existing := testutil.CreateTestTransaction(t, db, cat.ID, acct.ID, models.TransactionTypeExpense, 120, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
		db.Model(existing).Update("description", "Manual "+RecurrenceTag(rec.ID))

		summary, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Resynced != 1 || summary.Generated != 0 {
			t.Errorf("expected resync, got %+v", summary)
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 1 {
			t.Errorf("expected no new transaction, got %d total", count)
		}
	})

	t.Run("changed_amount_is_not_matched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)
		rec := testutil.CreateTestRecurring(t, db, cat.ID, acct.ID, 120, 10)

		existing := testutil.CreateTestTransaction(t, db, cat.ID, acct.ID, models.TransactionTypeExpense, 99, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
		db.Model(existing).Update("description", RecurrenceTag(rec.ID))

		summary, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Generated != 1 {
			t.Errorf("expected a new transaction, got %+v", summary)
		}
	})

	t.Run("inactive_definitions_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)
		rec := testutil.CreateTestRecurring(t, db, cat.ID, acct.ID, 50, 1)
		_, err := svc.SetRecurringActive(rec.ID, false)
		testutil.AssertNoError(t, err)

		summary, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Generated+summary.Resynced+summary.Skipped != 0 {
			t.Errorf("expected nothing processed, got %+v", summary)
		}
	})

	t.Run("created_paused_never_generates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)

		input := validRecurringInput(cat.ID, acct.ID)
		input.IsActive = false
		_, err := svc.CreateRecurring(input)
		testutil.AssertNoError(t, err)

		summary, err := svc.GenerateForMonth(feb)
		testutil.AssertNoError(t, err)
		if summary.Generated != 0 {
			t.Errorf("expected nothing generated, got %+v", summary)
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no ledger rows, got %d", count)
		}
	})

	t.Run("each_month_generated_separately", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)
		cat := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)
		acct := testutil.CreateTestAccount(t, db)
		testutil.CreateTestRecurring(t, db, cat.ID, acct.ID, 50, 31)

		for _, m := range []string{"2024-01", "2024-02", "2024-03", "2024-02"} {
			_, err := svc.GenerateForMonth(calendar.MustParseMonth(m))
			testutil.AssertNoError(t, err)
		}

		var count int64
		db.Model(&models.Transaction{}).Count(&count)
		if count != 3 {
			t.Errorf("expected 3 transactions, got %d", count)
		}
	})

	t.Run("zero_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRecurringService(db)

		_, err := svc.GenerateForMonth(calendar.Month{})
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})
}
