package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/ledger"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the saved document as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the saved document with a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := json.MarshalIndent(s.ledger.State(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	data = append(data, '\n')

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	progressf("Exported to %s", args[0])
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading import: %w", err)
	}
	state, err := ledger.DecodeState(data)
	if err != nil {
		return err
	}

	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ledger.Replace(state); err != nil {
		return err
	}
	progressf("Imported %d profiles and %d transactions", len(state.Users), len(state.Transactions))
	return nil
}
