package user

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/prompt"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	createPassword    string
	createEmail       string
	createDisplayName string
	createAdmin       bool
	createDisabled    bool
)

var createCmd = &cobra.Command{
	Use:     "create <username>",
	Aliases: []string{"add"},
	Short:   "Create a new user",
	Example: `  # Create a user, prompting for the password
  filehavenctl user create alice

  # Create an admin user with email
  filehavenctl user create bob --admin --email bob@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createPassword, "password", "", "Password (prompted if not provided)")
	createCmd.Flags().StringVar(&createEmail, "email", "", "Email address")
	createCmd.Flags().StringVar(&createDisplayName, "display-name", "", "Display name")
	createCmd.Flags().BoolVar(&createAdmin, "admin", false, "Grant the admin role")
	createCmd.Flags().BoolVar(&createDisabled, "disabled", false, "Create the user in disabled state")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	username := args[0]

	password := createPassword
	if password == "" {
		password, err = prompt.PasswordWithConfirmation("Password", "Confirm password", 8)
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	req := apiclient.CreateUserRequest{
		Username:    username,
		Password:    password,
		Email:       createEmail,
		DisplayName: createDisplayName,
	}
	if createAdmin {
		req.Role = "admin"
	}
	if createDisabled {
		enabled := false
		req.Enabled = &enabled
	}

	u, err := client.CreateUser(req)
	if err != nil {
		if apiErr, ok := err.(*apiclient.APIError); ok && apiErr.IsConflict() {
			return fmt.Errorf("user '%s' already exists", username)
		}
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, u,
		fmt.Sprintf("User '%s' created successfully", u.Username))
}
