package share

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <token>",
	Aliases: []string{"rm", "revoke"},
	Short:   "Delete a share link",
	Long:    `Delete a share link. The token stops working immediately.`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		token := args[0]
		return cmdutil.RunDeleteWithConfirmation("share", token, deleteForce, func() error {
			return client.DeleteShare(token)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
