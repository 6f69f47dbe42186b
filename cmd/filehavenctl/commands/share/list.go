package share

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your shares",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		shares, err := client.ListShares(listAll)
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(os.Stdout, shares, len(shares) == 0,
			"No shares found.", ShareList(shares))
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAll, "all", false, "List every share on the server (admin only)")
}
