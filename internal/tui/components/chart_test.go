package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{5, 1},
		{12, 2},
		{400, 50},
		{9500, 2000},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{
		500:     "500",
		1000:    "1k",
		2500:    "2.5k",
		3000000: "3M",
	}
	for v, want := range tests {
		if got := formatChartLabel(v); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestBarChartShape(t *testing.T) {
	out := BarChart([]float64{100, 400, 0}, []string{"01", "02", "03"}, lipgloss.Color("#ff0000"), 40, 4)
	lines := strings.Split(out, "\n")
	// 4 bar rows, the axis, the labels
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[len(lines)-1], "02") {
		t.Errorf("label row missing labels: %q", lines[len(lines)-1])
	}

	if BarChart(nil, nil, "", 40, 4) != "" {
		t.Error("empty chart should render nothing")
	}
}
