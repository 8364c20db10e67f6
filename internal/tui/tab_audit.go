package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/tui/components"
	"github.com/theirongolddev/nexus/internal/tui/theme"
)

func (a App) renderAuditTab(cw int) string {
	t := theme.Active
	av := a.dash.Audit

	var b strings.Builder

	overColor := t.Green
	if av.OverBudget > 0 {
		overColor = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Administrator", Value: av.Admin.Name, Note: "Budget " + cli.FormatMoney(av.Admin.Budget)},
		{Label: "Managed profiles", Value: cli.FormatCount(av.Managed)},
		{Label: "Over budget", Value: cli.FormatCount(av.OverBudget), Color: overColor},
	}, cw))
	b.WriteString("\n")

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(av.Entries) == 0 {
		b.WriteString(components.ContentCard("Budget Audit",
			muted.Render("No managed profiles. Create one in the Profiles tab."), cw))
		return b.String()
	}

	innerW := components.CardInnerWidth(cw)
	labelW := 18
	figuresW := 26
	barW := max(10, innerW-labelW-figuresW-6)

	figStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	var body strings.Builder
	for i, e := range av.Entries {
		if i > 0 {
			body.WriteString("\n")
		}
		body.WriteString(components.BudgetBar(e.Name, e.Progress, e.OverBudget, labelW, barW))
		figures := fmt.Sprintf(" %*s", figuresW,
			cli.FormatMoney(e.Expense)+" / "+cli.FormatMoney(e.Budget))
		if e.OverBudget {
			body.WriteString(overStyle.Render(figures))
		} else {
			body.WriteString(figStyle.Render(figures))
		}
	}

	b.WriteString(components.ContentCard("Budget Audit", body.String(), cw))
	return b.String()
}
