package context

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := credentials.NewStore()
		if err != nil {
			return fmt.Errorf("failed to initialize credential store: %w", err)
		}

		names := store.ListContexts()
		current := store.GetCurrentContextName()

		infos := make(ContextList, 0, len(names))
		for _, name := range names {
			ctx, err := store.GetContext(name)
			if err != nil {
				continue
			}
			infos = append(infos, ContextInfo{
				Name:      name,
				ServerURL: ctx.ServerURL,
				Username:  ctx.Username,
				LoggedIn:  ctx.AccessToken != "",
				Current:   name == current,
			})
		}

		return cmdutil.PrintOutput(os.Stdout, infos, len(infos) == 0,
			"No contexts found. Run 'filehavenctl login' to create one.", infos)
	},
}
