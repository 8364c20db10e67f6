// Package tui provides the interactive Bubble Tea dashboard for nexus.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/ledger"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/pipeline"
	"github.com/theirongolddev/nexus/internal/tui/components"
	"github.com/theirongolddev/nexus/internal/tui/theme"
	"github.com/theirongolddev/nexus/internal/view"
)

// OpenFunc opens the ledger, registering onChange to run after every saved
// mutation.
type OpenFunc func(onChange func(model.AppState)) (*ledger.Ledger, error)

// ledgerLoadedMsg is sent when the ledger has been opened.
type ledgerLoadedMsg struct {
	ledger   *ledger.Ledger
	err      error
	loadTime time.Duration
}

// liveState is the latest committed state, kept current by the ledger's
// change listener.
type liveState struct {
	state   model.AppState
	savedAt time.Time
}

func (l *liveState) update(s model.AppState) {
	l.state = s
	l.savedAt = time.Now()
}

const (
	tabDashboard = "Dashboard"
	tabTx        = "Transactions"
	tabAudit     = "Audit"
	tabProfiles  = "Profiles"
)

var (
	userTabs = []components.Tab{
		{Name: tabDashboard, Key: '1'},
		{Name: tabTx, Key: '2'},
		{Name: tabProfiles, Key: '3'},
	}
	adminTabs = []components.Tab{
		{Name: tabAudit, Key: '1'},
		{Name: tabProfiles, Key: '2'},
	}
)

// App is the root Bubble Tea model.
type App struct {
	open     OpenFunc
	ledger   *ledger.Ledger
	live     *liveState
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Recomputed from live.state after every change
	dash     view.Dashboard
	profiles []view.ProfileOption
	role     model.Role
	filter   pipeline.Filter

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	txList   listState
	profList listState

	// Embedded huh form, if one is open
	form     *huh.Form
	formKind formKind
	vals     *formValues

	notice    string
	noticeErr bool

	spinner spinner.Model
}

// listState is a cursor over a scrolling list.
type listState struct {
	cursor int
	offset int
}

func (l *listState) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.offset > l.cursor {
		l.offset = l.cursor
	}
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the TUI model. The ledger is opened by Init.
func NewApp(open OpenFunc) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		open:    open,
		live:    &liveState{},
		vals:    &formValues{},
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		openLedgerCmd(a.open, a.live),
		a.spinner.Tick,
	)
}

// openLedgerCmd opens the ledger off the UI loop.
func openLedgerCmd(open OpenFunc, live *liveState) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		l, err := open(live.update)
		return ledgerLoadedMsg{ledger: l, err: err, loadTime: time.Since(start)}
	}
}

func (a App) tabs() []components.Tab {
	if a.dash.IsAdmin {
		return adminTabs
	}
	return userTabs
}

func (a App) currentTab() string {
	tabs := a.tabs()
	if a.activeTab < 0 || a.activeTab >= len(tabs) {
		return ""
	}
	return tabs[a.activeTab].Name
}

// recompute rebuilds the dashboard projection from the live state.
func (a *App) recompute() {
	dash, ok := view.ComputeDashboard(a.live.state, a.filter)
	if !ok {
		a.setError(fmt.Errorf("active profile %q not found", a.live.state.ActiveUserID))
	}
	a.dash = dash
	a.profiles = view.Profiles(a.live.state)

	role := model.RoleUser
	if dash.IsAdmin {
		role = model.RoleAdmin
	}
	if role != a.role {
		a.role = role
		a.activeTab = 0
	}
	if a.activeTab >= len(a.tabs()) {
		a.activeTab = 0
	}

	a.txList.clamp(len(a.dash.User.Transactions))
	a.profList.clamp(len(a.profiles))
}

func (a *App) setNotice(format string, args ...any) {
	a.notice = fmt.Sprintf(format, args...)
	a.noticeErr = false
}

func (a *App) setError(err error) {
	a.notice = err.Error()
	a.noticeErr = true
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case ledgerLoadedMsg:
		a.loaded = true
		a.loadTime = msg.loadTime
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		a.ledger = msg.ledger
		a.live.state = a.ledger.State()
		a.recompute()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.loadErr != nil {
			if msg.String() == "q" || msg.String() == "esc" {
				return a, tea.Quit
			}
			return a, nil
		}
		if a.form != nil {
			if msg.String() == "esc" {
				return a.closeForm(), nil
			}
			return a.updateForm(msg)
		}
		return a.updateKey(msg)

	case tea.MouseMsg:
		if !a.loaded || a.loadErr != nil || a.showHelp || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)
	}

	// Forward everything else (cursor blinks, etc.) to an open form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.currentTab() {
	case tabTx:
		if m, cmd, ok := a.updateTransactionsKey(key); ok {
			return m, cmd
		}
	case tabProfiles:
		if m, cmd, ok := a.updateProfilesKey(key); ok {
			return m, cmd
		}
	}

	tabs := a.tabs()
	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(tabs)) % len(tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(tabs, r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.currentTab() == tabTx && a.txList.cursor > 0 {
			a.txList.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.currentTab() == tabTx && a.txList.cursor < len(a.dash.User.Transactions)-1 {
			a.txList.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the width rules RenderTabBar uses.
func (a App) tabAtX(x int) int {
	tabs := a.tabs()
	pos := 0
	for i, tab := range tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) formWidth() int {
	w := a.contentWidth() - 4
	if w > 70 {
		w = 70
	}
	return w
}

func (a App) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	a.form = form.WithWidth(a.formWidth())
	a.formKind = kind
	return a, a.form.Init()
}

func (a App) closeForm() App {
	if a.formKind == formTx && a.ledger != nil {
		a.ledger.CancelEdit()
	}
	a.form = nil
	a.formKind = formNone
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a = a.submitForm()
		return a, nil
	case huh.StateAborted:
		return a.closeForm(), nil
	}
	return a, cmd
}

// submitForm applies the completed form to the ledger and closes it.
func (a App) submitForm() App {
	v := a.vals
	switch a.formKind {
	case formTx:
		tx, err := a.ledger.UpsertTransaction(v.txFields())
		if err != nil {
			a.setError(err)
			break
		}
		if v.editing {
			a.setNotice("Updated %s", quoteOrBlank(tx.Desc))
		} else {
			a.setNotice("Added %s", quoteOrBlank(tx.Desc))
			a.txList = listState{}
		}

	case formFilter:
		a.filter = v.filter()
		a.txList = listState{}
		if a.filter.IsZero() {
			a.setNotice("Filter cleared")
		}

	case formProfile:
		u, err := a.ledger.RegisterUser(v.name, model.Role(v.role))
		if err != nil {
			a.setError(err)
			break
		}
		a.setNotice("Created profile %s", u.Name)

	case formBudget:
		budget, err := a.ledger.UpdateBudget(v.budget)
		if err != nil {
			a.setError(err)
			break
		}
		a.setNotice("Budget set to %s", cli.FormatMoney(budget))

	case formDelete:
		if !v.confirm {
			break
		}
		found, err := a.ledger.DeleteTransaction(v.deleteID)
		switch {
		case err != nil:
			a.setError(err)
		case found:
			a.setNotice("Transaction deleted")
		}
	}

	a = a.closeForm()
	a.recompute()
	return a
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewLoadError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  nexus needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ nexus"))
	b.WriteString(subtitleStyle.Render(" · Budget Tracker"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Opening ledger..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3).
		Width(min(a.width-4, 70))
	titleStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	body := titleStyle.Render("Could not open the ledger") + "\n\n" +
		bodyStyle.Render(a.loadErr.Error()) + "\n\n" +
		dimStyle.Render("Press q to quit")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"1 2 3", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k g G", "Move in lists"},
		}},
		{"Transactions", [][2]string{
			{"a", "Add transaction"},
			{"e", "Edit selected"},
			{"d", "Delete selected"},
			{"/", "Filter"},
			{"esc", "Clear filter"},
		}},
		{"Profiles", [][2]string{
			{"enter", "Switch to profile"},
			{"n", "New profile"},
			{"b", "Set budget of active profile"},
		}},
		{"", [][2]string{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		if s.title != "" {
			b.WriteString(sectionStyle.Render(s.title))
			b.WriteString("\n")
		}
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.tabs(), a.activeTab, w) + "\n" + a.renderInfoRow(w)

	status := components.StatusInfo{
		Notice:    a.notice,
		NoticeErr: a.noticeErr,
		SavedAt:   a.live.savedAt,
	}
	if u, ok := a.live.state.ActiveUser(); ok {
		status.Profile = u.Name
		status.Role = string(u.Role)
	}
	statusBar := components.RenderStatusBar(w, status)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.form != nil:
		content = a.renderForm(cw)
	default:
		switch a.currentTab() {
		case tabDashboard:
			content = a.renderDashboardTab(cw)
		case tabTx:
			content = a.renderTransactionsTab(cw, contentH)
		case tabAudit:
			content = a.renderAuditTab(cw)
		case tabProfiles:
			content = a.renderProfilesTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderInfoRow shows the active filter under the tab bar.
func (a App) renderInfoRow(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var parts []string
	if a.filter.Text != "" {
		parts = append(parts, accent.Render(fmt.Sprintf("%q", a.filter.Text)))
	}
	if a.filter.From != "" || a.filter.To != "" {
		parts = append(parts, accent.Render(fmt.Sprintf("%s → %s", dash(a.filter.From), dash(a.filter.To))))
	}

	s := dim.Render(" ")
	if len(parts) == 0 {
		s += dim.Render("no filter")
	} else {
		s += dim.Render("filter ") + strings.Join(parts, dim.Render(" │ "))
	}
	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(s)
}

func (a App) renderForm(cw int) string {
	t := theme.Active
	title := map[formKind]string{
		formTx:      "Transaction",
		formFilter:  "Filter transactions",
		formProfile: "New profile",
		formBudget:  "Budget",
		formDelete:  "Delete transaction",
	}[a.formKind]
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("enter to confirm · esc to cancel")
	return components.ContentCard(title, a.form.View()+"\n"+hint, min(cw, a.formWidth()+6))
}

// ─── Helpers ────────────────────────────────────────────────────

func dash(s string) string {
	if s == "" {
		return "…"
	}
	return s
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color
// so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
