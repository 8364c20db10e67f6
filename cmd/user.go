package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/nexus/internal/cli"
	"github.com/theirongolddev/nexus/internal/model"
)

var flagUserRole string

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"profile"},
	Short:   "Manage profiles",
}

var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a profile with the default budget and categories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUserAdd,
}

var userUseCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Switch the active profile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUserUse,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

func init() {
	userAddCmd.Flags().StringVar(&flagUserRole, "role", string(model.RoleUser), "admin or user")

	userCmd.AddCommand(userAddCmd, userUseCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(_ *cobra.Command, args []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	u, err := s.ledger.RegisterUser(strings.Join(args, " "), model.Role(flagUserRole))
	if err != nil {
		return err
	}
	progressf("Registered %s (%s, budget %s) as %s", u.Name, u.Role, cli.FormatMoney(u.Budget), u.ID)
	return nil
}

// resolveUser finds a profile by exact id, then by exact name.
func resolveUser(state model.AppState, ref string) (model.User, bool) {
	if u, ok := state.User(model.ID(ref)); ok {
		return u, true
	}
	for _, u := range state.Users {
		if u.Name == ref {
			return u, true
		}
	}
	return model.User{}, false
}

func runUserUse(_ *cobra.Command, args []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	ref := strings.Join(args, " ")
	id := model.ID(ref)
	if u, ok := resolveUser(s.ledger.State(), ref); ok {
		id = u.ID
	}

	if err := s.ledger.SetActiveUser(id); err != nil {
		return fmt.Errorf("%s: %w", ref, err)
	}
	u, _ := s.ledger.State().ActiveUser()
	progressf("Active profile: %s (%s)", u.Name, u.Role)
	return nil
}

func runUserList(_ *cobra.Command, _ []string) error {
	s, err := openSession(os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	state := s.ledger.State()
	rows := make([][]string, 0, len(state.Users))
	for _, u := range state.Users {
		marker := ""
		if u.ID == state.ActiveUserID {
			marker = "*"
		}
		rows = append(rows, []string{
			marker + u.Name,
			string(u.Role),
			string(u.ID),
			cli.FormatMoney(u.Budget),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Profiles",
		Headers:  []string{"Name", "Role", "ID", "Budget"},
		Rows:     rows,
		TextCols: 3,
	}))
	return nil
}
