package context

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a context",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		oldName, newName := args[0], args[1]
		if err := store.RenameContext(oldName, newName); err != nil {
			if errors.Is(err, credentials.ErrContextNotFound) {
				return fmt.Errorf("context '%s' not found", oldName)
			}
			return err
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Context '%s' renamed to '%s'", oldName, newName))
		return nil
	},
}
