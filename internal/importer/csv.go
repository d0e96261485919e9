// Package importer turns bank-statement CSV files into normalized
// transaction candidates. It never touches the database and never rejects a
// row: unparseable values fall back to defaults.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Field is a canonical column of a statement.
type Field string

const (
	FieldDate        Field = "date"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldType        Field = "type"
	FieldCategory    Field = "category"
	FieldAccount     Field = "account"
)

// HeaderAliases maps each canonical field to the header spellings accepted
// for it. Matching is case-insensitive and ignores surrounding whitespace.
var HeaderAliases = map[Field][]string{
	FieldDate:        {"date", "data", "dt", "transaction_date", "posted_date"},
	FieldDescription: {"description", "descrição", "descricao", "desc", "memo", "histórico", "historico"},
	FieldAmount:      {"amount", "valor", "value", "quantia"},
	FieldType:        {"type", "tipo"},
	FieldCategory:    {"category", "categoria"},
	FieldAccount:     {"account", "conta"},
}

// RawRow is one statement line with fields located by header alias.
// Missing columns are empty strings.
type RawRow struct {
	Line        int
	Date        string
	Description string
	Amount      string
	Type        string
	Category    string
	Account     string
}

// columnIndex resolves the header row once into field -> column position.
type columnIndex map[Field]int

func resolveHeader(header []string) columnIndex {
	lookup := make(map[string]Field)
	for field, aliases := range HeaderAliases {
		for _, alias := range aliases {
			lookup[strings.ToLower(alias)] = field
		}
	}

	idx := make(columnIndex)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		field, ok := lookup[h]
		if !ok {
			continue
		}
		// First matching column wins.
		if _, seen := idx[field]; !seen {
			idx[field] = i
		}
	}
	return idx
}

func (idx columnIndex) value(record []string, field Field) string {
	i, ok := idx[field]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.ToValidUTF8(record[i], "")
}

// Parse reads a header line followed by data lines. Ragged rows are
// tolerated and blank lines are skipped. An empty stream yields no rows.
func Parse(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToValidUTF8(header[i], "")
	}
	idx := resolveHeader(header)

	var rows []RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if isBlank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, RawRow{
			Line:        line,
			Date:        idx.value(record, FieldDate),
			Description: idx.value(record, FieldDescription),
			Amount:      idx.value(record, FieldAmount),
			Type:        idx.value(record, FieldType),
			Category:    idx.value(record, FieldCategory),
			Account:     idx.value(record, FieldAccount),
		})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
