package files

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <path> <action>",
	Short: "Check whether an action is allowed on a path",
	Long: `Check whether an action is allowed on a path without performing it.

Actions: read, write, delete, upload, create_folder, share, download.
A denial is reported with its reason; it is not an error.`,
	Example: `  filehavenctl files check /finance/budget.xlsx write`,
	Args:    cobra.ExactArgs(2),
	RunE:    runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	path, action := args[0], args[1]
	resp, err := client.Authorize(path, action)
	if err != nil {
		return err
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintOutput(os.Stdout, resp, false, "", nil)
	}

	if resp.Allowed {
		fmt.Printf("Allowed: %s on %s\n", action, path)
	} else {
		reason := ""
		if resp.Access != nil && resp.Access.DenialReason != "" {
			reason = fmt.Sprintf(" (%s)", resp.Access.DenialReason)
		}
		fmt.Printf("Denied: %s on %s%s\n", action, path, reason)
	}
	if resp.Access != nil {
		fmt.Printf("Effective permission: %s\n", resp.Access.EffectivePermission)
	}
	return nil
}
