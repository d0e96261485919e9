package calendar

import (
	"testing"
	"time"

	"financas/internal/testutil"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "canonical", input: "2024-03", want: "2024-03"},
		{name: "single_digit_month", input: "2024-3", want: "2024-03"},
		{name: "surrounding_spaces", input: "  2024-12 ", want: "2024-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMonth(tt.input)
			testutil.AssertNoError(t, err)
			if m.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, m.String())
			}
		})
	}

	for _, bad := range []string{"", "2024", "2024-13", "2024-00", "24-01", "2024/01", "abcd-01", "2024-001"} {
		t.Run("invalid_"+bad, func(t *testing.T) {
			_, err := ParseMonth(bad)
			testutil.AssertAppError(t, err, "INVALID_MONTH")
		})
	}
}

func TestMonthDate(t *testing.T) {
	tests := []struct {
		name  string
		month string
		day   int
		want  string
	}{
		{name: "within_month", month: "2024-03", day: 15, want: "2024-03-15"},
		{name: "clamped_to_february_leap", month: "2024-02", day: 31, want: "2024-02-29"},
		{name: "clamped_to_february", month: "2023-02", day: 30, want: "2023-02-28"},
		{name: "clamped_to_thirty_days", month: "2024-04", day: 31, want: "2024-04-30"},
		{name: "last_day_kept", month: "2024-01", day: 31, want: "2024-01-31"},
		{name: "below_one", month: "2024-01", day: 0, want: "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseMonth(tt.month).Date(tt.day).Format("2006-01-02")
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMonthBoundaries(t *testing.T) {
	m := MustParseMonth("2024-12")

	if got := m.FirstDay().Format("2006-01-02"); got != "2024-12-01" {
		t.Errorf("expected first day 2024-12-01, got %s", got)
	}
	if got := m.NextFirstDay().Format("2006-01-02"); got != "2025-01-01" {
		t.Errorf("expected next first day 2025-01-01, got %s", got)
	}
	if m.DaysIn() != 31 {
		t.Errorf("expected 31 days, got %d", m.DaysIn())
	}
	if m.Next().String() != "2025-01" {
		t.Errorf("expected next month 2025-01, got %s", m.Next())
	}
	if MustParseMonth("2024-01").Previous().String() != "2023-12" {
		t.Error("expected previous of 2024-01 to be 2023-12")
	}
	if !m.Contains(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)) {
		t.Error("expected Dec 31 to be inside 2024-12")
	}
	if m.Contains(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("expected Jan 1 to be outside 2024-12")
	}
	if !MustParseMonth("2024-11").Before(m) || m.Before(m) {
		t.Error("unexpected Before ordering")
	}
}

func TestResolveMonth(t *testing.T) {
	clock := &FixedClock{FixedNow: time.Date(2025, 7, 9, 14, 0, 0, 0, time.UTC)}

	t.Run("empty_uses_clock", func(t *testing.T) {
		m, err := ResolveMonth("", clock)
		testutil.AssertNoError(t, err)
		if m.String() != "2025-07" {
			t.Errorf("expected 2025-07, got %s", m)
		}
	})

	t.Run("explicit", func(t *testing.T) {
		m, err := ResolveMonth("2023-01", clock)
		testutil.AssertNoError(t, err)
		if m.String() != "2023-01" {
			t.Errorf("expected 2023-01, got %s", m)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ResolveMonth("July", clock)
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("today_is_midnight_utc", func(t *testing.T) {
		today := Today(clock)
		if !today.Equal(time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected today %v", today)
		}
	})
}
