package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTable_LinesShareWidth(t *testing.T) {
	out := RenderTable(Table{
		Headers:  []string{"Date", "Category", "Amount"},
		TextCols: 2,
		Rows: [][]string{
			{"2024-01-05", "Nómina", "+$1,200"},
			{"---"},
			{"2024-01-06", "Arriendo", "-$500"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i, w, want, l)
		}
	}
}

func TestRenderTable_Empty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}

func TestRenderProgressBar_Clamps(t *testing.T) {
	for _, f := range []float64{-1, 0, 0.5, 1, 3} {
		bar := RenderProgressBar(f, 10, f > 1)
		if !strings.Contains(bar, "%") {
			t.Errorf("RenderProgressBar(%v) = %q, missing percentage", f, bar)
		}
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Errorf("RenderProgressBar(%v) has %d cells, want 10", f, n)
		}
	}
}
