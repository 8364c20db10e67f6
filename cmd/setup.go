package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/config"
	"github.com/theirongolddev/nexus/internal/ledger"
	"github.com/theirongolddev/nexus/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := config.Load()

	adminName := cfg.Profiles.AdminName
	adminBudget := fmt.Sprintf("%g", cfg.Profiles.AdminBudget)
	userBudget := fmt.Sprintf("%g", cfg.Profiles.UserBudget)
	themeName := cfg.Appearance.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to nexus").
				Description("These settings apply to new data. Existing profiles keep their budgets."),
			huh.NewInput().
				Title("Admin profile name").
				Value(&adminName).
				Validate(nonEmpty),
			huh.NewInput().
				Title("Admin budget").
				Value(&adminBudget).
				Validate(validBudget),
			huh.NewInput().
				Title("Budget for new profiles").
				Value(&userBudget).
				Validate(validBudget),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	cfg.Profiles.AdminName = strings.TrimSpace(adminName)
	cfg.Profiles.AdminBudget, _ = ledger.ParseLenient(adminBudget).Float64()
	cfg.Profiles.UserBudget, _ = ledger.ParseLenient(userBudget).Float64()
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `nexus setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func nonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validBudget(s string) error {
	d, err := ledger.ParseAmount(s)
	if err != nil {
		return errors.New("enter a number")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
}
