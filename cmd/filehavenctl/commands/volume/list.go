package volume

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var listUserID string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List volumes",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		volumes, err := client.ListVolumes(listUserID)
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(os.Stdout, volumes, len(volumes) == 0,
			"No volumes found.", VolumeList(volumes))
	},
}

func init() {
	listCmd.Flags().StringVar(&listUserID, "user", "", "List only volumes belonging to this user ID")
}
