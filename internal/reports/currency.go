package reports

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders v as Brazilian reais: "R$ 1.234,56".
func FormatCurrency(v float64) string {
	return FormatDecimal(decimal.NewFromFloat(v))
}

// FormatDecimal renders d as Brazilian reais, rounded to cents.
func FormatDecimal(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	if strings.Trim(fixed, "0.") == "" {
		sign = ""
	}

	intPart, frac, _ := strings.Cut(fixed, ".")
	return "R$ " + sign + groupThousands(intPart, ".") + "," + frac
}

func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
