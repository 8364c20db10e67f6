package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/pipeline"
	"github.com/theirongolddev/nexus/internal/view"
)

var (
	flagSearch string
	flagFrom   string
	flagTo     string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Dashboard of the active profile",
	RunE:  runSummary,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, summaryCmd} {
		c.Flags().StringVar(&flagSearch, "search", "", "Filter by description or category (substring)")
		c.Flags().StringVar(&flagFrom, "from", "", "Only transactions on or after YYYY-MM-DD")
		c.Flags().StringVar(&flagTo, "to", "", "Only transactions on or before YYYY-MM-DD")
	}
	rootCmd.AddCommand(summaryCmd)
}

func currentFilter() pipeline.Filter {
	return pipeline.Filter{Text: flagSearch, From: flagFrom, To: flagTo}
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	dash, ok := view.ComputeDashboard(s.ledger.State(), currentFilter())
	if !ok {
		return fmt.Errorf("active profile does not exist")
	}

	fmt.Println()
	if dash.IsAdmin {
		printAudit(dash.Audit)
		return nil
	}
	printUserView(dash.User)
	return nil
}

func printUserView(v view.UserView) {
	fmt.Println(cli.RenderTitle(fmt.Sprintf("NEXUS  %s", v.User.Name)))
	fmt.Println()

	st := v.Stats
	rows := [][]string{
		{"Balance", cli.FormatMoney(st.Balance)},
		{"Status", cli.StatusLabel(st.Status)},
		{"---"},
		{"Income", cli.FormatMoney(st.Income)},
		{"Expenses", cli.FormatMoney(st.Expense)},
		{"---"},
		{"Budget", cli.FormatMoney(st.Budget)},
		{st.VarianceKind.String(), cli.FormatMoney(st.VarianceAmount)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(v.ExpenseByCategory) > 0 {
		fmt.Println()
		top, _ := v.ExpenseByCategory[0].Amount.Float64()
		for _, c := range v.ExpenseByCategory {
			amt, _ := c.Amount.Float64()
			label := fmt.Sprintf("%-12s %10s", cli.Truncate(c.Category, 12), cli.FormatMoney(c.Amount))
			fmt.Println(cli.RenderHorizontalBar(label, amt, top, 30))
		}
	}

	fmt.Println()
	printTransactions(v)
}

func printTransactions(v view.UserView) {
	if v.Total == 0 {
		fmt.Println("  No transactions yet. Add one with `nexus tx add`.")
		return
	}
	if v.Shown == 0 {
		fmt.Println("  No transactions match the filter.")
		return
	}

	rows := make([][]string, 0, len(v.Transactions))
	for _, t := range v.Transactions {
		rows = append(rows, []string{
			cli.FormatDate(t.Date),
			cli.Truncate(t.Desc, 32),
			t.Category,
			cli.FormatTxAmount(t),
			string(t.ID),
		})
	}

	title := fmt.Sprintf("Transactions (%s)", cli.FormatCount(v.Total))
	if v.Filtered() {
		title = fmt.Sprintf("Transactions (%s of %s)", cli.FormatCount(v.Shown), cli.FormatCount(v.Total))
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    title,
		Headers:  []string{"Date", "Description", "Category", "Amount", "ID"},
		Rows:     rows,
		TextCols: 3,
	}))
}

func printAudit(a view.AuditView) {
	fmt.Println(cli.RenderTitle(fmt.Sprintf("NEXUS AUDIT  %s", a.Admin.Name)))
	fmt.Println()

	if a.Managed == 0 {
		fmt.Println("  No managed profiles yet. Register one with `nexus user add`.")
		return
	}

	rows := make([][]string, 0, len(a.Entries))
	for _, e := range a.Entries {
		status := cli.Good("OK")
		if e.OverBudget {
			status = cli.Bad("OVER")
		}
		rows = append(rows, []string{
			e.Name,
			cli.FormatMoney(e.Expense),
			cli.FormatMoney(e.Budget),
			cli.RenderProgressBar(e.Progress, 20, e.OverBudget),
			status,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Managed profiles (%d, %d over budget)", a.Managed, a.OverBudget),
		Headers: []string{"Profile", "Spent", "Budget", "Progress", "Status"},
		Rows:    rows,
	}))
}
