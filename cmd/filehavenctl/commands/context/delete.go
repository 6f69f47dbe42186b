package context

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored context",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		name := args[0]
		if _, err := store.GetContext(name); err != nil {
			if errors.Is(err, credentials.ErrContextNotFound) {
				return fmt.Errorf("context '%s' not found", name)
			}
			return err
		}

		return cmdutil.RunDeleteWithConfirmation("context", name, deleteForce, func() error {
			return store.DeleteContext(name)
		})
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}
