package rule

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var reorderCmd = &cobra.Command{
	Use:   "reorder <rule-id>...",
	Short: "Reorder path rules",
	Long: `Reorder path rules. The arguments must list every rule ID exactly
once, in the desired evaluation order.`,
	Example: `  filehavenctl rule reorder 3f2a... 9c81... 0d4e...`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		rules, err := client.ReorderRules(args)
		if err != nil {
			return err
		}

		return cmdutil.PrintOutput(os.Stdout, rules, len(rules) == 0,
			"No rules found.", RuleList(rules))
	},
}
