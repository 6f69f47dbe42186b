package rule

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <rule-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a path rule",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		id := args[0]
		return cmdutil.RunDeleteWithConfirmation("rule", id, deleteForce, func() error {
			return client.DeleteRule(id)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
