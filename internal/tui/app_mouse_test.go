package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/nexus/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for _, admin := range []bool{false, true} {
		a := App{}
		a.dash.IsAdmin = admin
		tabs := a.tabs()

		for active := range tabs {
			a.activeTab = active
			pos := 0
			for i, tab := range tabs {
				w := len(tab.Name) + 2 // horizontal padding
				if i != active {
					w += 3 // "[k]"
				}
				if w != components.TabVisualWidth(tab, i == active) {
					t.Fatalf("tab %q: visual width %d, want %d", tab.Name, components.TabVisualWidth(tab, i == active), w)
				}

				x := pos + w/2
				if got := a.tabAtX(x); got != i {
					t.Fatalf("admin=%v active=%d x=%d -> tab=%d, want %d", admin, active, x, got, i)
				}
				pos += w + 1 // separator
			}
			if got := a.tabAtX(pos + 5); got != -1 {
				t.Errorf("x past the last tab -> %d, want -1", got)
			}
		}
	}
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a := newTestApp(t)
	a = userApp(t, a)

	// Profiles is the third user tab.
	x := 0
	for i := 0; i < 2; i++ {
		x += components.TabVisualWidth(userTabs[i], i == a.activeTab) + 1
	}
	m, _ := a.Update(tea.MouseMsg{X: x + 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	a = m.(App)
	if got := a.currentTab(); got != tabProfiles {
		t.Errorf("after click current tab = %q, want %q", got, tabProfiles)
	}
}
