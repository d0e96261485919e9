package reports

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "zero", input: 0, want: "R$ 0,00"},
		{name: "cents", input: 0.5, want: "R$ 0,50"},
		{name: "hundreds", input: 999.99, want: "R$ 999,99"},
		{name: "thousands", input: 1234.56, want: "R$ 1.234,56"},
		{name: "millions", input: 1234567.891, want: "R$ 1.234.567,89"},
		{name: "negative", input: -2500, want: "R$ -2.500,00"},
		{name: "negative_rounds_to_zero", input: -0.001, want: "R$ 0,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	t.Run("decimal_input", func(t *testing.T) {
		if got := FormatDecimal(decimal.RequireFromString("100000")); got != "R$ 100.000,00" {
			t.Errorf("unexpected %q", got)
		}
	})
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "relatorio_2024-03", want: "relatorio_2024-03"},
		{input: "relatório 2024/03", want: "relat_rio_2024_03"},
		{input: "../etc/passwd", want: "___etc_passwd"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderCSV(t *testing.T) {
	t.Run("headers_then_rows", func(t *testing.T) {
		out, err := RenderCSV(Report{
			Title:   "Relatório",
			Meta:    []MetaLine{{Key: "Mês", Value: "2024-03"}},
			Headers: []string{"Data", "Descrição", "Valor"},
			Rows: [][]string{
				{"2024-03-01", "Aluguel, março", "1500.00"},
				{"2024-03-05", `Padaria "Pão"`, "12.30"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
		}
		if lines[0] != "Data,Descrição,Valor" {
			t.Errorf("unexpected header %q", lines[0])
		}
		if lines[1] != `2024-03-01,"Aluguel, março",1500.00` {
			t.Errorf("expected quoted comma field, got %q", lines[1])
		}
		if lines[2] != `2024-03-05,"Padaria ""Pão""",12.30` {
			t.Errorf("expected escaped quotes, got %q", lines[2])
		}
	})

	t.Run("no_rows", func(t *testing.T) {
		out, err := RenderCSV(Report{Headers: []string{"A", "B"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "A,B\n" {
			t.Errorf("expected header only, got %q", out)
		}
	})
}
