// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
)

// FormatMoney formats an amount with thousands separators and at most two
// decimals, dropping trailing zeros.
// e.g., 9500 -> "$9,500", -500 -> "-$500", 1234.5 -> "$1,234.5"
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	out := sign + "$" + humanize.BigComma(whole.BigInt())
	if frac := d.Sub(whole); !frac.IsZero() {
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}

// FormatTxAmount formats a transaction amount signed by its type:
// income "+$200", expense "-$500".
func FormatTxAmount(t model.Transaction) string {
	if t.Type != model.Income {
		return FormatMoney(t.Amount.Neg())
	}
	s := FormatMoney(t.Amount)
	if t.Amount.IsPositive() {
		s = "+" + s
	}
	return s
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatVariance describes a budget variance: "Savings $9,460" or
// "Excess $120".
func FormatVariance(s model.UserStats) string {
	return s.VarianceKind.String() + " " + FormatMoney(s.VarianceAmount)
}

// FormatDate returns the date or a dash when it is empty.
func FormatDate(date string) string {
	if date == "" {
		return "—"
	}
	return date
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
