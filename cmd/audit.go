package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/view"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Spending against budget for every managed profile",
	RunE:  runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.ledger.State()
	if u, ok := state.ActiveUser(); !ok || !u.IsAdmin() {
		return fmt.Errorf("audit needs an admin profile; switch with `nexus user use`")
	}

	fmt.Println()
	printAudit(view.ComputeAdminAudit(state))
	return nil
}
