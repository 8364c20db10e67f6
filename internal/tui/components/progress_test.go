package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/tui/theme"
)

func TestColorForBudget(t *testing.T) {
	theme.SetActive("flexoki-dark")
	th := theme.Active

	tests := []struct {
		pct  float64
		over bool
		want lipgloss.Color
	}{
		{0.1, false, th.Green},
		{0.75, false, th.Yellow},
		{0.95, false, th.Orange},
		{1, false, th.Orange},
		{1, true, th.Red},
		{0, true, th.Red},
	}
	for _, tt := range tests {
		if got := ColorForBudget(tt.pct, tt.over); got != tt.want {
			t.Errorf("ColorForBudget(%v, %v) = %v, want %v", tt.pct, tt.over, got, tt.want)
		}
	}
}

func TestBudgetBarWidth(t *testing.T) {
	for _, pct := range []float64{-1, 0, 0.5, 1, 3} {
		bar := BudgetBar("Servicios de internet", pct, pct > 1, 10, 20)
		// label, space, bar, space, "nnn%"
		if w := lipgloss.Width(bar); w != 10+1+20+1+4 {
			t.Errorf("pct=%v: width = %d, want 36", pct, w)
		}
	}
}
