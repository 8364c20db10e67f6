package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/ledger"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/store"
	"github.com/theirongolddev/nexus/internal/tui"
	"github.com/theirongolddev/nexus/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// The alt screen owns the terminal, so logs go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath()), 0o750); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	log := newLogger(logFile, cfg)

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	open := func(onChange func(model.AppState)) (*ledger.Ledger, error) {
		return ledger.Open(db,
			ledger.WithKey(cfg.StoreKey()),
			ledger.WithLegacyKeys(cfg.General.LegacyKeys...),
			ledger.WithSeed(cfg.Seed()),
			ledger.WithLogger(log),
			ledger.WithOnChange(onChange),
		)
	}

	// Force TrueColor so every background style produces ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(open), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	log.Debug("tui closed")
	return nil
}
