package utils

import (
	"math"
	"strconv"
	"strings"

	"vitrina/models"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"MXN": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney formats an API money amount for display. COP amounts use the
// local format without decimals ("$12.500"); other currencies use two
// decimals with comma grouping ("$1,234.50").
func FormatMoney(m models.Money) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(m.Amount), 64)
	if err != nil {
		return m.Amount
	}
	code := strings.ToUpper(m.CurrencyCode)
	if code == "COP" {
		return FormatCOP(int64(math.Round(f)))
	}

	cents := int64(math.Round(f * 100))
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := groupThousands(strconv.FormatInt(cents/100, 10), ',')
	frac := strconv.FormatInt(cents%100+100, 10)[1:]

	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	s := symbol + whole + "." + frac
	if neg {
		s = "-" + s
	}
	return s
}

// FormatCOP formats an integer amount (in COP) as a string like "$12.500".
// Uses dot as thousands separator (common in Colombia).
func FormatCOP(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := "$" + groupThousands(strconv.FormatInt(amount, 10), '.')
	if neg {
		s = "-" + s
	}
	return s
}

// groupThousands inserts sep every three digits from the right
func groupThousands(s string, sep byte) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(sep)
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
