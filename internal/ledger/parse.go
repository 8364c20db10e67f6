package ledger

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxExponent bounds the power of ten a parsed number may carry. A decimal
// prints every digit its exponent implies, so "1e50000000" would save as
// fifty million characters.
const maxExponent = 15

func inRange(d decimal.Decimal) bool {
	e := d.Exponent()
	return e <= maxExponent && e >= -maxExponent
}

// ParseLenient reads the longest leading decimal number in s, ignoring
// surrounding whitespace and any trailing garbage. Text without a numeric
// prefix, or whose exponent is out of range, yields zero.
//
//	ParseLenient("1500")     -> 1500
//	ParseLenient(" 12.5kg ") -> 12.5
//	ParseLenient("abc")      -> 0
//	ParseLenient("1e400")    -> 0
func ParseLenient(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return clampRange(d)
	}

	m := leadingNumber.FindString(s)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		d, err = decimal.NewFromString(strings.TrimSuffix(m, "."))
		if err != nil {
			return decimal.Zero
		}
	}
	return clampRange(d)
}

func clampRange(d decimal.Decimal) decimal.Decimal {
	if !inRange(d) {
		return decimal.Zero
	}
	return d
}

// ParseAmount parses a transaction amount strictly. Sign is not checked;
// exponents beyond ±15 are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !inRange(d) {
		return decimal.Zero, fmt.Errorf("amount %q is out of range", s)
	}
	return d, nil
}
