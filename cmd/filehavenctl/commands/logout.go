package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials for the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		name := store.GetCurrentContextName()
		if name == "" {
			fmt.Println("Not logged in.")
			return nil
		}

		if err := store.ClearCurrentContext(); err != nil {
			return fmt.Errorf("failed to clear credentials: %w", err)
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Logged out of context '%s'", name))
		return nil
	},
}
