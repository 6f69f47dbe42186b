package settings

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "get"},
	Short:   "Show feature settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		settings, err := client.GetSettings()
		if err != nil {
			return err
		}

		return cmdutil.PrintResource(os.Stdout, settings, SettingsView(*settings))
	},
}
