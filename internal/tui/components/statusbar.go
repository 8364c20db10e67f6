package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/nexus/internal/tui/theme"
)

// StatusInfo is what the bottom bar shows.
type StatusInfo struct {
	Profile   string
	Role      string
	SavedAt   time.Time
	Notice    string
	NoticeErr bool
}

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// latest notice in the middle, the active profile and last save on the right.
func RenderStatusBar(width int, s StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	accent := base.Foreground(t.Accent).Bold(true)

	noticeStyle := base.Foreground(t.Green)
	if s.NoticeErr {
		noticeStyle = base.Foreground(t.Red).Bold(true)
	}

	left := base.Render(" [?]help  [q]uit")

	right := accent.Render(s.Profile)
	if s.Role != "" {
		right += base.Render(" · " + s.Role)
	}
	if !s.SavedAt.IsZero() {
		right += base.Render(fmt.Sprintf(" · saved %s", s.SavedAt.Local().Format("15:04:05")))
	}
	right += base.Render(" ")

	middle := ""
	if s.Notice != "" {
		middle = noticeStyle.Render("  " + s.Notice)
	}

	// Drop the notice before the hints when space runs out.
	padding := width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if padding < 0 {
		middle = ""
		padding = width - lipgloss.Width(left) - lipgloss.Width(right)
	}
	if padding < 0 {
		padding = 0
	}

	return left + middle + base.Render(strings.Repeat(" ", padding)) + right
}
