package context

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
)

var useCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a different context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		name := args[0]
		if err := store.UseContext(name); err != nil {
			if errors.Is(err, credentials.ErrContextNotFound) {
				return fmt.Errorf("context '%s' not found. Run 'filehavenctl context list' to see available contexts", name)
			}
			return err
		}

		cmdutil.PrintSuccess(fmt.Sprintf("Switched to context '%s'", name))
		return nil
	},
}
