package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/filehaven/filehaven/internal/cli/output"
	"github.com/filehaven/filehaven/internal/cli/prompt"
	"github.com/filehaven/filehaven/pkg/config"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	userAddAdmin   bool
	userAddEmail   string
	userAddName    string
	userListOutput string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long: `Manage FileHaven users directly against the control plane database.

These commands operate on the database configured in the server config file
and do not require the server to be running. For remote management, use the
HTTP API with filehavenctl instead.

Examples:
  # Add a user (prompts for password)
  filehaven user add alice

  # Add an admin user
  filehaven user add bob --admin

  # List all users
  filehaven user list

  # Change a password
  filehaven user passwd alice

  # Disable and re-enable a user
  filehaven user disable alice
  filehaven user enable alice

  # Delete a user and their volumes, rules and shares
  filehaven user delete alice`,
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDelete,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserPasswd,
}

var userEnableCmd = &cobra.Command{
	Use:   "enable <username>",
	Short: "Enable a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserSetEnabled(true),
}

var userDisableCmd = &cobra.Command{
	Use:   "disable <username>",
	Short: "Disable a user account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserSetEnabled(false),
}

func init() {
	userAddCmd.Flags().BoolVar(&userAddAdmin, "admin", false, "Grant the admin role")
	userAddCmd.Flags().StringVar(&userAddEmail, "email", "", "Email address")
	userAddCmd.Flags().StringVar(&userAddName, "display-name", "", "Display name")
	userListCmd.Flags().StringVarP(&userListOutput, "output", "o", "table", "Output format (table|json|yaml)")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userPasswdCmd)
	userCmd.AddCommand(userEnableCmd)
	userCmd.AddCommand(userDisableCmd)
}

// openStore loads the configuration and opens the control plane store.
func openStore() (store.Store, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}
	cpStore, err := store.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open control plane store: %w", err)
	}
	return cpStore, nil
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	cpStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = cpStore.Close() }()

	password, err := prompt.PasswordWithConfirmation("Password", "Confirm password", 8)
	if err != nil {
		return err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role := string(models.RoleUser)
	if userAddAdmin {
		role = string(models.RoleAdmin)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Enabled:      true,
		Role:         role,
		DisplayName:  userAddName,
		Email:        userAddEmail,
	}

	if _, err := cpStore.CreateUser(context.Background(), user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %q created (role: %s)\n", username, role)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	username := args[0]

	if username == models.AdminUsername {
		return fmt.Errorf("the %q user cannot be deleted", models.AdminUsername)
	}

	confirmed, err := prompt.Confirm(fmt.Sprintf("Delete user %q and all their volumes, rules and shares?", username), false)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted")
		return nil
	}

	cpStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = cpStore.Close() }()

	if err := cpStore.DeleteUser(context.Background(), username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %q deleted\n", username)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(userListOutput)
	if err != nil {
		return err
	}

	cpStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = cpStore.Close() }()

	users, err := cpStore.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, users)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, users)
	default:
		table := output.NewTableData("USERNAME", "ROLE", "ENABLED", "EMAIL", "CREATED", "LAST LOGIN")
		for _, u := range users {
			lastLogin := "never"
			if u.LastLogin != nil {
				lastLogin = u.LastLogin.Local().Format(time.RFC3339)
			}
			table.AddRow(
				u.Username,
				u.Role,
				fmt.Sprintf("%t", u.Enabled),
				u.Email,
				u.CreatedAt.Local().Format(time.RFC3339),
				lastLogin,
			)
		}
		return output.PrintTable(os.Stdout, table)
	}
}

func runUserPasswd(cmd *cobra.Command, args []string) error {
	username := args[0]

	cpStore, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = cpStore.Close() }()

	// Fail early if the user doesn't exist
	if _, err := cpStore.GetUser(context.Background(), username); err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	password, err := prompt.PasswordWithConfirmation("New password", "Confirm password", 8)
	if err != nil {
		return err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := cpStore.UpdatePassword(context.Background(), username, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	fmt.Printf("Password updated for %q\n", username)
	return nil
}

func runUserSetEnabled(enabled bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		username := args[0]

		if !enabled && username == models.AdminUsername {
			return fmt.Errorf("the %q user cannot be disabled", models.AdminUsername)
		}

		cpStore, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = cpStore.Close() }()

		ctx := context.Background()
		user, err := cpStore.GetUser(ctx, username)
		if err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}

		if user.Enabled == enabled {
			fmt.Printf("User %q is already %s\n", username, enabledWord(enabled))
			return nil
		}

		user.Enabled = enabled
		if err := cpStore.UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Printf("User %q %s\n", username, enabledWord(enabled))
		return nil
	}
}

func enabledWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
