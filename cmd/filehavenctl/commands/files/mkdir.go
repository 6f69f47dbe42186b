package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		path := args[0]
		if err := client.CreateFolder(path); err != nil {
			return err
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Folder %s created", path))
		return nil
	},
}
