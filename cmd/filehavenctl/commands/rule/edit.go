package rule

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	editPath         string
	editPermissions  string
	editRecursive    bool
	editNonRecursive bool
)

var editCmd = &cobra.Command{
	Use:   "edit <rule-id>",
	Short: "Edit a path rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editPath, "path", "", "New path pattern")
	editCmd.Flags().StringVar(&editPermissions, "permissions", "", "New permissions: rw, ro, or hidden")
	editCmd.Flags().BoolVar(&editRecursive, "recursive", false, "Match the path and all its children")
	editCmd.Flags().BoolVar(&editNonRecursive, "non-recursive", false, "Match only the path itself")
	editCmd.MarkFlagsMutuallyExclusive("recursive", "non-recursive")
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := apiclient.UpdateRuleRequest{}
	if cmd.Flags().Changed("path") {
		req.Path = &editPath
	}
	if cmd.Flags().Changed("permissions") {
		if !validPermissions(editPermissions) {
			return fmt.Errorf("invalid permissions '%s': must be rw, ro, or hidden", editPermissions)
		}
		req.Permissions = &editPermissions
	}
	if editRecursive {
		recursive := true
		req.Recursive = &recursive
	}
	if editNonRecursive {
		recursive := false
		req.Recursive = &recursive
	}

	if req.Path == nil && req.Permissions == nil && req.Recursive == nil {
		return fmt.Errorf("nothing to change: specify at least one flag")
	}

	r, err := client.UpdateRule(args[0], req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, r,
		fmt.Sprintf("Rule updated: %s -> %s", r.Path, r.Permissions))
}
