package user

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/prompt"
)

var passwordCmd = &cobra.Command{
	Use:   "password [username]",
	Short: "Change a password",
	Long: `Change a password.

Without arguments, changes your own password and prompts for the current
one. With a username argument, sets that user's password directly
(requires the admin role).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPassword,
}

func runPassword(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		// Admin path: set another user's password
		username := args[0]
		newPassword, err := prompt.PasswordWithConfirmation("New password", "Confirm new password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
		if err := client.SetUserPassword(username, newPassword); err != nil {
			return err
		}
		cmdutil.PrintSuccess(fmt.Sprintf("Password for user '%s' updated successfully", username))
		return nil
	}

	// Self-service path: requires the current password
	currentPassword, err := prompt.PasswordWithValidation("Current password", 1)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	newPassword, err := prompt.PasswordWithConfirmation("New password", "Confirm new password", 8)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}
	if err := client.ChangeOwnPassword(currentPassword, newPassword); err != nil {
		return err
	}
	cmdutil.PrintSuccess("Password updated successfully")
	return nil
}
