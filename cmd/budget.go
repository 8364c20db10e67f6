package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/cli"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage the active profile's budget",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <amount>",
	Short: "Set the active profile's budget",
	Long: "Set the active profile's budget. Text that does not start with a number sets it to zero, " +
		"and so does a negative amount. Pass negative amounts after -- so they are not read as flags.",
	Example: "  nexus budget set 1500\n  nexus budget set -- -5",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSet,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.ledger.UpdateBudget(args[0])
	if err != nil {
		return err
	}
	u, _ := s.ledger.State().ActiveUser()
	progressf("Budget for %s: %s", u.Name, cli.FormatMoney(b))
	return nil
}
