package rule

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var createNonRecursive bool

var createCmd = &cobra.Command{
	Use:     "create <path> <permissions>",
	Aliases: []string{"add"},
	Short:   "Create a path rule",
	Long: `Create a path rule. New rules are appended at the end of the
evaluation order; use 'rule reorder' to move them.`,
	Example: `  # Hide a directory tree from everyone
  filehavenctl rule create /finance hidden

  # Make a single directory read-only, without affecting children
  filehavenctl rule create /archive ro --non-recursive`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVar(&createNonRecursive, "non-recursive", false, "Match only the path itself, not its children")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	path, permissions := args[0], args[1]
	if !validPermissions(permissions) {
		return fmt.Errorf("invalid permissions '%s': must be rw, ro, or hidden", permissions)
	}

	req := apiclient.CreateRuleRequest{
		Path:        path,
		Permissions: permissions,
	}
	if createNonRecursive {
		recursive := false
		req.Recursive = &recursive
	}

	r, err := client.CreateRule(req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, r,
		fmt.Sprintf("Rule created: %s -> %s (position %d)", r.Path, r.Permissions, r.Position))
}
