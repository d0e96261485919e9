// Package calendar provides the month abstraction used for budgets and
// recurring generation, plus a Clock for deterministic tests.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "financas/internal/errors"
)

// Month identifies a calendar month. Its canonical text form is YYYY-MM.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the Month for the given year and month number.
func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Month: month}
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string. Surrounding whitespace and a
// single-digit month ("2024-3") are accepted.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	year, month, ok := strings.Cut(s, "-")
	if !ok || len(year) != 4 || len(month) == 0 || len(month) > 2 {
		return Month{}, apperrors.WithMessage(apperrors.ErrInvalidMonth, fmt.Sprintf("invalid month %q, expected YYYY-MM", s))
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return Month{}, apperrors.WithMessage(apperrors.ErrInvalidMonth, fmt.Sprintf("invalid year in %q", s))
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Month{}, apperrors.WithMessage(apperrors.ErrInvalidMonth, fmt.Sprintf("invalid month in %q", s))
	}

	return Month{Year: y, Month: time.Month(m)}, nil
}

// MustParseMonth is like ParseMonth but panics on error. Intended for tests
// and constants.
func MustParseMonth(s string) Month {
	m, err := ParseMonth(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ResolveMonth returns the current month for an empty string, otherwise the
// parsed month.
func ResolveMonth(raw string, clock Clock) (Month, error) {
	if strings.TrimSpace(raw) == "" {
		return CurrentMonth(clock), nil
	}
	return ParseMonth(raw)
}

// String returns the canonical YYYY-MM form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// FirstDay returns midnight UTC of the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// NextFirstDay returns midnight UTC of the first day of the following month.
func (m Month) NextFirstDay() time.Time {
	return m.FirstDay().AddDate(0, 1, 0)
}

// DaysIn returns the number of days in the month.
func (m Month) DaysIn() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the given day of the month at midnight UTC, clamped to the
// last day of the month. Days below 1 are treated as 1.
func (m Month) Date(day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := m.DaysIn(); day > last {
		day = last
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the month (compared in UTC).
func (m Month) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(m.FirstDay()) && t.Before(m.NextFirstDay())
}

// Previous returns the month before m.
func (m Month) Previous() Month {
	return MonthOf(m.FirstDay().AddDate(0, -1, 0))
}

// Next returns the month after m.
func (m Month) Next() Month {
	return MonthOf(m.NextFirstDay())
}

// Before reports whether m is earlier than other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}
