package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/tui/theme"
)

// ColorForBudget returns the bar color for a spend fraction: red when over
// budget, then orange, yellow and green by utilization.
func ColorForBudget(pct float64, over bool) lipgloss.Color {
	t := theme.Active
	switch {
	case over:
		return t.Red
	case pct >= 0.9:
		return t.Orange
	case pct >= 0.7:
		return t.Yellow
	default:
		return t.Green
	}
}

// BudgetBar renders a labeled spend-versus-budget bar with its percentage.
func BudgetBar(label string, pct float64, over bool, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	color := ColorForBudget(pct, over)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	name := []rune(label)
	if len(name) > labelW {
		name = append(name[:labelW-1], '…')
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, string(name))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
