package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/pipeline"
	"github.com/theirongolddev/nexus/internal/tui/components"
	"github.com/theirongolddev/nexus/internal/tui/theme"
)

func (a App) updateProfilesKey(key string) (m tea.Model, cmd tea.Cmd, ok bool) {
	switch key {
	case "j", "down":
		if a.profList.cursor < len(a.profiles)-1 {
			a.profList.cursor++
		}
	case "k", "up":
		if a.profList.cursor > 0 {
			a.profList.cursor--
		}
	case "enter":
		if a.profList.cursor >= len(a.profiles) {
			return a, nil, true
		}
		p := a.profiles[a.profList.cursor]
		if p.Active {
			return a, nil, true
		}
		if err := a.ledger.SetActiveUser(p.ID); err != nil {
			a.setError(err)
			return a, nil, true
		}
		a.filter = pipeline.Filter{}
		a.txList = listState{}
		a.recompute()
		a.setNotice("Switched to %s", p.Name)
	case "n":
		*a.vals = formValues{role: string(model.RoleUser)}
		m, cmd = a.openForm(formProfile, newProfileForm(a.vals))
		return m, cmd, true
	case "b":
		u, found := a.live.state.ActiveUser()
		if !found {
			return a, nil, true
		}
		*a.vals = formValues{budget: u.Budget.String()}
		m, cmd = a.openForm(formBudget, newBudgetForm(a.vals))
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderProfilesTab(cw int) string {
	t := theme.Active

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	roleW, budgetW := 7, 12
	nameW := max(8, innerW-roleW-budgetW-5)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-*s %*s", nameW, "Name", roleW, "Role", budgetW, "Budget")))
	for i, p := range a.profiles {
		style := rowStyle
		if i == a.profList.cursor {
			style = selStyle
		}
		mark := " "
		if p.Active {
			mark = "●"
		}
		budget := ""
		if u, ok := a.live.state.User(p.ID); ok {
			budget = cli.FormatMoney(u.Budget)
		}
		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%s %-*s %-*s %*s",
			mark, nameW, cli.Truncate(p.Name, nameW), roleW, p.Role, budgetW, budget)))
	}
	b.WriteString("\n\n")
	b.WriteString(dim.Render("enter switch · n new profile · b set budget of the active profile"))

	return components.ContentCard(fmt.Sprintf("Profiles [%d]", len(a.profiles)), b.String(), cw)
}
