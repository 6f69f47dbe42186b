package rule

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List path rules in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		rules, err := client.ListRules()
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(os.Stdout, rules, len(rules) == 0,
			"No rules found. All paths default to rw.", RuleList(rules))
	},
}
