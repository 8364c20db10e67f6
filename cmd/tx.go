package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/ledger"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/view"
)

var (
	flagTxDesc     string
	flagTxAmount   string
	flagTxType     string
	flagTxCategory string
	flagTxDate     string
	flagTxYes      bool
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Add, edit, remove and list transactions of the active profile",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	Args:  cobra.NoArgs,
	RunE:  runTxAdd,
}

var txEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the given fields of a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxEdit,
}

var txRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a transaction",
	Args:    cobra.ExactArgs(1),
	RunE:    runTxRm,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runTxList,
}

func init() {
	for _, c := range []*cobra.Command{txAddCmd, txEditCmd} {
		c.Flags().StringVar(&flagTxDesc, "desc", "", "Description")
		c.Flags().StringVar(&flagTxAmount, "amount", "", "Amount")
		c.Flags().StringVar(&flagTxType, "type", string(model.Expense), "income or expense")
		c.Flags().StringVar(&flagTxCategory, "category", "", "Category")
		c.Flags().StringVar(&flagTxDate, "date", "", "Date as YYYY-MM-DD (add defaults to today)")
	}
	_ = txAddCmd.MarkFlagRequired("amount")

	txRmCmd.Flags().BoolVarP(&flagTxYes, "yes", "y", false, "Skip confirmation")

	txListCmd.Flags().StringVar(&flagSearch, "search", "", "Filter by description or category (substring)")
	txListCmd.Flags().StringVar(&flagFrom, "from", "", "Only transactions on or after YYYY-MM-DD")
	txListCmd.Flags().StringVar(&flagTo, "to", "", "Only transactions on or before YYYY-MM-DD")

	txCmd.AddCommand(txAddCmd, txEditCmd, txRmCmd, txListCmd)
	rootCmd.AddCommand(txCmd)
}

// txFieldsFromFlags converts the flags the caller set into form fields.
// When all is true every field is sent, using defaults for unset flags.
func txFieldsFromFlags(cmd *cobra.Command, all bool) (ledger.TxFields, error) {
	var f ledger.TxFields
	set := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if set("desc") {
		f.Desc = &flagTxDesc
	}
	if set("amount") {
		amt, err := ledger.ParseAmount(flagTxAmount)
		if err != nil {
			return f, fmt.Errorf("invalid amount %q", flagTxAmount)
		}
		f.Amount = &amt
	}
	if set("type") {
		typ := model.TxType(flagTxType)
		if !typ.Valid() {
			return f, fmt.Errorf("invalid type %q: use income or expense", flagTxType)
		}
		f.Type = &typ
	}
	if set("category") {
		f.Category = &flagTxCategory
	}
	if set("date") {
		if flagTxDate == "" && all {
			flagTxDate = time.Now().Format(time.DateOnly)
		}
		if flagTxDate != "" {
			if _, err := time.Parse(time.DateOnly, flagTxDate); err != nil {
				return f, fmt.Errorf("invalid date %q: use YYYY-MM-DD", flagTxDate)
			}
		}
		f.Date = &flagTxDate
	}
	return f, nil
}

func warnUnknownCategory(u model.User, f ledger.TxFields) {
	if f.Category != nil && *f.Category != "" && !u.HasCategory(*f.Category) {
		progressf("Note: %q is not one of %s's categories", *f.Category, u.Name)
	}
}

func runTxAdd(cmd *cobra.Command, _ []string) error {
	f, err := txFieldsFromFlags(cmd, true)
	if err != nil {
		return err
	}

	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	if u, ok := s.ledger.State().ActiveUser(); ok {
		warnUnknownCategory(u, f)
	}

	tx, err := s.ledger.UpsertTransaction(f)
	if err != nil {
		return err
	}
	progressf("Added %s %s (%s)", tx.Type, cli.FormatMoney(tx.Amount), tx.ID)
	return nil
}

func runTxEdit(cmd *cobra.Command, args []string) error {
	f, err := txFieldsFromFlags(cmd, false)
	if err != nil {
		return err
	}

	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	id := model.ID(args[0])
	if _, ok := s.ledger.BeginEdit(id); !ok {
		return fmt.Errorf("no transaction %s for the active profile", id)
	}
	if u, ok := s.ledger.State().ActiveUser(); ok {
		warnUnknownCategory(u, f)
	}

	tx, err := s.ledger.UpsertTransaction(f)
	if err != nil {
		return err
	}
	progressf("Updated %s: %s %s %s", tx.ID, tx.Date, tx.Desc, cli.FormatTxAmount(tx))
	return nil
}

func runTxRm(_ *cobra.Command, args []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	id := model.ID(args[0])
	state := s.ledger.State()
	idx := state.TransactionIndex(id)
	if idx < 0 {
		progressf("No transaction %s, nothing to delete", id)
		return nil
	}

	if !flagTxYes {
		tx := state.Transactions[idx]
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q (%s, %s)?", tx.Desc, cli.FormatTxAmount(tx), cli.FormatDate(tx.Date))).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if errors.Is(err, huh.ErrUserAborted) || (err == nil && !confirmed) {
			progressf("Kept %s", id)
			return nil
		}
		if err != nil {
			return fmt.Errorf("confirmation: %w", err)
		}
	}

	if _, err := s.ledger.DeleteTransaction(id); err != nil {
		return err
	}
	progressf("Deleted %s", id)
	return nil
}

func runTxList(_ *cobra.Command, _ []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.ledger.State()
	v, ok := view.ComputeUserView(state, state.ActiveUserID, currentFilter())
	if !ok {
		return fmt.Errorf("active profile does not exist")
	}

	fmt.Println()
	printTransactions(v)
	return nil
}
