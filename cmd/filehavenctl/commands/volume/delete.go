package volume

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <volume-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a user volume",
	Long: `Delete a user volume. The backing directory on the server is not
touched; only the mount is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		id := args[0]
		return cmdutil.RunDeleteWithConfirmation("volume", id, deleteForce, func() error {
			return client.DeleteVolume(id)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
