package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseLenient(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1500", "1500"},
		{"  42 ", "42"},
		{"12abc", "12"},
		{"12.5kg", "12.5"},
		{"3.", "3"},
		{"3.x", "3"},
		{".5", "0.5"},
		{"-7.25", "-7.25"},
		{"+8", "8"},
		{"2e2", "200"},
		{"2e", "2"},
		{"abc", "0"},
		{"", "0"},
		{".", "0"},
		{"-", "0"},
		{"1,000", "1"},
		{"1e15", "1000000000000000"},
		{"1e16", "0"},
		{"1e50000000", "0"},
		{"-1e999999999", "0"},
		{"1e-50000000", "0"},
		{"7e400kg", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLenient(tt.in)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseLenient(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"500", "500", false},
		{" 1,234.50 ", "1234.5", false},
		{"-20", "-20", false},
		{"abc", "", true},
		{"", "", true},
		{"12abc", "", true},
		{"2.5e3", "2500", false},
		{"1e50000000", "", true},
		{"1e-50000000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) = %s, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func FuzzParseLenient(f *testing.F) {
	for _, s := range []string{"1500", "12abc", "", "-", ".5e-3", "9999999999999999999999.1", "1e50000000", "1e-999999999x"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		// Must not panic, stays within the exponent bound, and parsing its
		// own string form gives it back.
		d := ParseLenient(s)
		if e := d.Exponent(); e > maxExponent || e < -maxExponent {
			t.Fatalf("ParseLenient(%q) exponent %d out of range", s, e)
		}
		if again := ParseLenient(d.String()); !again.Equal(d) {
			t.Errorf("ParseLenient(%q) = %s, reparsed as %s", s, d, again)
		}
	})
}
