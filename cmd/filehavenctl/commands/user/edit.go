package user

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	editEmail       string
	editDisplayName string
	editRole        string
	editEnable      bool
	editDisable     bool
)

var editCmd = &cobra.Command{
	Use:   "edit <username>",
	Short: "Edit a user",
	Example: `  # Disable a user
  filehavenctl user edit alice --disable

  # Promote a user to admin
  filehavenctl user edit bob --role admin`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editEmail, "email", "", "New email address")
	editCmd.Flags().StringVar(&editDisplayName, "display-name", "", "New display name")
	editCmd.Flags().StringVar(&editRole, "role", "", "New role: user or admin")
	editCmd.Flags().BoolVar(&editEnable, "enable", false, "Enable the user")
	editCmd.Flags().BoolVar(&editDisable, "disable", false, "Disable the user")
	editCmd.MarkFlagsMutuallyExclusive("enable", "disable")
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	username := args[0]
	req := apiclient.UpdateUserRequest{}

	if cmd.Flags().Changed("email") {
		req.Email = &editEmail
	}
	if cmd.Flags().Changed("display-name") {
		req.DisplayName = &editDisplayName
	}
	if cmd.Flags().Changed("role") {
		if editRole != "user" && editRole != "admin" {
			return fmt.Errorf("invalid role '%s': must be user or admin", editRole)
		}
		req.Role = &editRole
	}
	if editEnable {
		enabled := true
		req.Enabled = &enabled
	}
	if editDisable {
		enabled := false
		req.Enabled = &enabled
	}

	if req.Email == nil && req.DisplayName == nil && req.Role == nil && req.Enabled == nil {
		return fmt.Errorf("nothing to change: specify at least one flag")
	}

	u, err := client.UpdateUser(username, req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, u,
		fmt.Sprintf("User '%s' updated successfully", u.Username))
}
