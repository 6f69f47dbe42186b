package user

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		users, err := client.ListUsers()
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(os.Stdout, users, len(users) == 0,
			"No users found.", UserList(users))
	},
}
