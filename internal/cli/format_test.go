package cli

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"9500", "$9,500"},
		{"-500", "-$500"},
		{"1234.5", "$1,234.5"},
		{"1234.50", "$1,234.5"},
		{"0.05", "$0.05"},
		{"1234567.891", "$1,234,567.89"},
		{"-0.004", "$0"},
		{"40000", "$40,000"},
		{"1e19", "$10,000,000,000,000,000,000"},
		{"1e20", "$100,000,000,000,000,000,000"},
		{"-12345678901234567890.5", "-$12,345,678,901,234,567,890.5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatTxAmount(t *testing.T) {
	tests := []struct {
		typ    model.TxType
		amount string
		want   string
	}{
		{model.Income, "200", "+$200"},
		{model.Expense, "500", "-$500"},
		{model.Expense, "0", "$0"},
		{model.Income, "-3", "-$3"},
		{model.Expense, "-3", "$3"},
	}

	for _, tt := range tests {
		tx := model.Transaction{Type: tt.typ, Amount: decimal.RequireFromString(tt.amount)}
		if got := FormatTxAmount(tx); got != tt.want {
			t.Errorf("FormatTxAmount(%s %s) = %q, want %q", tt.typ, tt.amount, got, tt.want)
		}
	}
}

func TestFormatVariance(t *testing.T) {
	s := model.UserStats{VarianceKind: model.Excess, VarianceAmount: decimal.NewFromInt(120)}
	if got := FormatVariance(s); got != "Excess $120" {
		t.Errorf("FormatVariance = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Renta", 10, "Renta"},
		{"Renta enero", 6, "Renta…"},
		{"Nómina", 3, "Nó…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
