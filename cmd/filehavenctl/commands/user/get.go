package user

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:   "get <username>",
	Short: "Show details of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		u, err := client.GetUser(args[0])
		if err != nil {
			return err
		}

		table := output.NewTableData("FIELD", "VALUE")
		table.AddRow("ID", u.ID)
		table.AddRow("Username", u.Username)
		table.AddRow("Display Name", cmdutil.EmptyOr(u.DisplayName, "-"))
		table.AddRow("Email", cmdutil.EmptyOr(u.Email, "-"))
		table.AddRow("Role", u.Role)
		table.AddRow("Enabled", cmdutil.BoolToYesNo(u.Enabled))
		table.AddRow("Created", u.CreatedAt.Format(timeFormat))
		if u.LastLogin != nil {
			table.AddRow("Last Login", u.LastLogin.Format(timeFormat))
		} else {
			table.AddRow("Last Login", "never")
		}

		return cmdutil.PrintResource(os.Stdout, u, table)
	},
}
