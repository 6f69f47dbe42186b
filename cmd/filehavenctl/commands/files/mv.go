package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var mvCmd = &cobra.Command{
	Use:     "mv <path> <new-path>",
	Aliases: []string{"rename"},
	Short:   "Rename or move a file or folder",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		from, to := args[0], args[1]
		if err := client.Rename(from, to); err != nil {
			return err
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Moved %s to %s", from, to))
		return nil
	},
}
