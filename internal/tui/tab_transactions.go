package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/pipeline"
	"github.com/theirongolddev/nexus/internal/tui/components"
	"github.com/theirongolddev/nexus/internal/tui/theme"
)

// updateTransactionsKey handles the transactions tab bindings. ok is false
// when the key falls through to the global bindings.
func (a App) updateTransactionsKey(key string) (m tea.Model, cmd tea.Cmd, ok bool) {
	txs := a.dash.User.Transactions

	switch key {
	case "j", "down":
		if a.txList.cursor < len(txs)-1 {
			a.txList.cursor++
		}
	case "k", "up":
		if a.txList.cursor > 0 {
			a.txList.cursor--
		}
	case "g", "home":
		a.txList = listState{}
	case "G", "end":
		a.txList.cursor = max(0, len(txs)-1)

	case "/":
		*a.vals = formValues{search: a.filter.Text, from: a.filter.From, to: a.filter.To}
		m, cmd = a.openForm(formFilter, newFilterForm(a.vals))
		return m, cmd, true
	case "esc":
		if a.filter.IsZero() {
			return a, nil, true
		}
		a.filter = pipeline.Filter{}
		a.txList = listState{}
		a.recompute()
		a.setNotice("Filter cleared")

	case "a":
		a.ledger.CancelEdit()
		*a.vals = formValues{
			txType: string(model.Expense),
			date:   time.Now().Format(time.DateOnly),
		}
		m, cmd = a.openForm(formTx, newTxForm(a.vals, a.dash.User.User.Cats))
		return m, cmd, true
	case "e", "enter":
		tx, found := a.selectedTx()
		if !found {
			return a, nil, true
		}
		if _, began := a.ledger.BeginEdit(tx.ID); !began {
			a.setError(fmt.Errorf("transaction %s cannot be edited", tx.ID))
			return a, nil, true
		}
		*a.vals = formValues{
			desc:     tx.Desc,
			amount:   tx.Amount.String(),
			txType:   string(txTypeOrExpense(tx.Type)),
			category: tx.Category,
			date:     tx.Date,
			editing:  true,
		}
		m, cmd = a.openForm(formTx, newTxForm(a.vals, a.dash.User.User.Cats))
		return m, cmd, true
	case "d", "delete":
		tx, found := a.selectedTx()
		if !found {
			return a, nil, true
		}
		*a.vals = formValues{deleteID: tx.ID}
		m, cmd = a.openForm(formDelete, newDeleteForm(a.vals, tx.Desc))
		return m, cmd, true

	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) selectedTx() (model.Transaction, bool) {
	txs := a.dash.User.Transactions
	if a.txList.cursor < 0 || a.txList.cursor >= len(txs) {
		return model.Transaction{}, false
	}
	return txs[a.txList.cursor], true
}

func txTypeOrExpense(t model.TxType) model.TxType {
	if t == model.Income {
		return model.Income
	}
	return model.Expense
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	v := a.dash.User
	txs := v.Transactions

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	title := fmt.Sprintf("Transactions [%d]", v.Total)
	if v.Filtered() {
		title = fmt.Sprintf("Transactions [%d of %d]", v.Shown, v.Total)
	}

	if len(txs) == 0 {
		body := muted.Render("No transactions. Press a to add one.")
		if v.Filtered() {
			body = muted.Render("Nothing matches the filter. Press esc to clear it.")
		}
		return components.ContentCard(title, body, cw)
	}

	innerW := components.CardInnerWidth(cw)
	dateW, amountW, catW := 10, 12, 14
	descW := max(8, innerW-dateW-amountW-catW-3)

	// Rows available inside the card: border (2) + title + header line.
	visible := max(1, h-4)
	ls := a.txList
	if ls.cursor < ls.offset {
		ls.offset = ls.cursor
	}
	if ls.cursor >= ls.offset+visible {
		ls.offset = ls.cursor - visible + 1
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	incomeStyle := lipgloss.NewStyle().Foreground(t.Green)
	expenseStyle := lipgloss.NewStyle().Foreground(t.Red)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %-*s %*s",
		dateW, "Date", descW, "Description", catW, "Category", amountW, "Amount")))

	end := min(len(txs), ls.offset+visible)
	for i := ls.offset; i < end; i++ {
		tx := txs[i]
		style := rowStyle
		if i == a.txList.cursor {
			style = selStyle
		}
		amtStyle := expenseStyle
		if tx.Type == model.Income {
			amtStyle = incomeStyle
		}
		amtStyle = amtStyle.Background(style.GetBackground()).Bold(style.GetBold())

		b.WriteString("\n")
		b.WriteString(style.Render(fmt.Sprintf("%-*s %-*s %-*s ",
			dateW, cli.FormatDate(tx.Date),
			descW, cli.Truncate(tx.Desc, descW),
			catW, cli.Truncate(categoryLabel(tx.Category), catW))))
		b.WriteString(amtStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatTxAmount(tx))))
	}
	if end < len(txs) {
		b.WriteString("\n")
		b.WriteString(dim.Render(fmt.Sprintf("↓ %d more", len(txs)-end)))
	}

	return components.ContentCard(title, b.String(), cw)
}
