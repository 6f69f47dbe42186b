package context

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		name := store.GetCurrentContextName()
		if name == "" {
			fmt.Println("No current context. Run 'filehavenctl login' first.")
			return nil
		}

		ctx, err := store.GetContext(name)
		if err != nil {
			return err
		}

		info := ContextInfo{
			Name:      name,
			ServerURL: ctx.ServerURL,
			Username:  ctx.Username,
			LoggedIn:  ctx.AccessToken != "",
			Current:   true,
		}
		return cmdutil.PrintResource(os.Stdout, info, ContextList{info})
	},
}
