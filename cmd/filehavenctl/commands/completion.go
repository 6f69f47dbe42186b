package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for filehavenctl.

To load completions:

Bash:
  $ source <(filehavenctl completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ filehavenctl completion bash > /etc/bash_completion.d/filehavenctl
  # macOS:
  $ filehavenctl completion bash > $(brew --prefix)/etc/bash_completion.d/filehavenctl

Zsh:
  $ source <(filehavenctl completion zsh)

  # To load completions for each session, execute once:
  $ filehavenctl completion zsh > "${fpath[1]}/_filehavenctl"

Fish:
  $ filehavenctl completion fish | source

  # To load completions for each session, execute once:
  $ filehavenctl completion fish > ~/.config/fish/completions/filehavenctl.fish

PowerShell:
  PS> filehavenctl completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}
