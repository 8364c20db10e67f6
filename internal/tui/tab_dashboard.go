package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/pipeline"
	"github.com/theirongolddev/nexus/internal/tui/components"
	"github.com/theirongolddev/nexus/internal/tui/theme"
)

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	v := a.dash.User
	s := v.Stats

	var b strings.Builder

	// Row 1: balance, income, expenses, budget
	balanceColor := t.TextPrimary
	switch s.Status {
	case model.Surplus:
		balanceColor = t.Green
	case model.Deficit:
		balanceColor = t.Red
	}
	varianceColor := t.Green
	if s.VarianceKind == model.Excess {
		varianceColor = t.Red
	}

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Balance", Value: cli.FormatMoney(s.Balance), Note: s.Status.String(), Color: balanceColor},
		{Label: "Income", Value: cli.FormatMoney(s.Income), Color: t.Green},
		{Label: "Expenses", Value: cli.FormatMoney(s.Expense), Note: cli.FormatCount(s.TransactionCount) + " transactions"},
		{Label: "Budget", Value: cli.FormatMoney(s.Budget), Note: cli.FormatVariance(s), Color: varianceColor},
	}, cw))
	b.WriteString("\n")

	// Row 2: budget usage
	over := s.VarianceKind == model.Excess
	frac := pipeline.ProgressFraction(s.Expense, s.Budget)
	barW := max(10, components.CardInnerWidth(cw)-20)
	usage := components.BudgetBar("Spent", frac, over, 8, barW)
	b.WriteString(components.ContentCard("Budget Usage", usage, cw))
	b.WriteString("\n")

	// Row 3: category breakdown beside the monthly chart
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Expenses by Category", a.renderCategoryBars(halves[0]), halves[0]),
		components.ContentCard("Monthly Expenses", a.renderMonthlyChart(halves[1]), halves[1]),
	}))

	return b.String()
}

func (a App) renderCategoryBars(outerW int) string {
	t := theme.Active
	cats := a.dash.User.ExpenseByCategory
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(cats) == 0 {
		return muted.Render("No expenses yet")
	}

	total := a.dash.User.Stats.Expense
	innerW := components.CardInnerWidth(outerW)
	labelW := 12
	amountW := 10
	barW := max(5, innerW-labelW-amountW-7)

	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	for i, c := range cats {
		if i > 0 {
			b.WriteString("\n")
		}
		frac := 0.0
		if total.IsPositive() {
			frac, _ = c.Amount.Div(total).Float64()
		}
		b.WriteString(components.BudgetBar(categoryLabel(c.Category), frac, false, labelW, barW))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %*s", amountW, cli.FormatMoney(c.Amount))))
	}
	return b.String()
}

func (a App) renderMonthlyChart(outerW int) string {
	t := theme.Active
	months := a.dash.User.ExpenseByMonth
	if len(months) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No expenses yet")
	}

	values := make([]float64, len(months))
	labels := make([]string, len(months))
	for i, m := range months {
		values[i], _ = m.Amount.Float64()
		labels[i] = m.Month[5:] // MM
	}
	return components.BarChart(values, labels, t.Red, components.CardInnerWidth(outerW), 6)
}

func categoryLabel(c string) string {
	if c == "" {
		return "(none)"
	}
	return c
}
