package importer

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"financas/internal/models"
)

// dateLayouts are tried in order; the first successful parse wins, so an
// ambiguous 03/04/2024 is read month-first. Month and day take one or two
// digits.
var dateLayouts = []string{"2006-1-2", "1/2/2006", "2/1/2006"}

var typeSynonyms = map[string]models.TransactionType{
	"income":  models.TransactionTypeIncome,
	"receita": models.TransactionTypeIncome,
	"expense": models.TransactionTypeExpense,
	"despesa": models.TransactionTypeExpense,
}

// Candidate is a normalized row ready to be persisted.
type Candidate struct {
	Line            int
	Date            time.Time
	Description     string
	Amount          float64
	Type            models.TransactionType
	CategoryName    string
	Account         string
	DateDefaulted   bool
	AmountDefaulted bool
}

// CoerceDate parses s with the supported layouts. It returns today and false
// when nothing matches.
func CoerceDate(s string, today time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return today, false
}

// CoerceAmount strips whitespace and thousands commas and parses the rest as
// a decimal number. It returns 0 and false when parsing fails.
func CoerceAmount(s string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// TypeSynonym maps an income/expense synonym to its transaction type.
func TypeSynonym(s string) (models.TransactionType, bool) {
	t, ok := typeSynonyms[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// InferType picks the transaction type from the explicit type field, then
// from a category field that holds a type synonym, then from the sign of
// amount: positive is income, zero or negative is expense.
func InferType(explicitType, category string, amount float64) models.TransactionType {
	if t, ok := TypeSynonym(explicitType); ok {
		return t
	}
	if t, ok := TypeSynonym(category); ok {
		return t
	}
	if amount > 0 {
		return models.TransactionTypeIncome
	}
	return models.TransactionTypeExpense
}

// Normalize converts a raw row into a candidate. The stored amount is
// always the absolute value; direction lives only in Type.
func Normalize(row RawRow, today time.Time) Candidate {
	date, dateOK := CoerceDate(row.Date, today)
	amount, amountOK := CoerceAmount(row.Amount)

	category := strings.TrimSpace(row.Category)
	if _, isSynonym := TypeSynonym(category); isSynonym {
		category = ""
	}

	return Candidate{
		Line:            row.Line,
		Date:            date,
		Description:     models.TruncateDescription(strings.TrimSpace(row.Description)),
		Amount:          decimal.NewFromFloat(amount).Abs().InexactFloat64(),
		Type:            InferType(row.Type, row.Category, amount),
		CategoryName:    category,
		Account:         strings.TrimSpace(row.Account),
		DateDefaulted:   !dateOK,
		AmountDefaulted: !amountOK,
	}
}

// NormalizeAll normalizes every row against the same "today".
func NormalizeAll(rows []RawRow, today time.Time) []Candidate {
	out := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, Normalize(row, today))
	}
	return out
}
