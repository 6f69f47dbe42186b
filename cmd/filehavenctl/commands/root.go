// Package commands implements the filehavenctl CLI commands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	contextcmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/context"
	filescmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/files"
	rulecmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/rule"
	settingscmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/settings"
	sharecmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/share"
	usercmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/user"
	volumecmd "github.com/filehaven/filehaven/cmd/filehavenctl/commands/volume"
)

// Build information. Set by main at startup.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "filehavenctl",
	Short: "Control CLI for FileHaven servers",
	Long: `filehavenctl is the control CLI for FileHaven servers.

It manages users, path rules, volumes, shares, and feature settings
on a running FileHaven server, and browses files through the server's
access control engine.

Authenticate with 'filehavenctl login' before running other commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Sync persistent flags into the shared flag store for subcommands
		cmdutil.Flags.ServerURL, _ = cmd.Flags().GetString("server")
		cmdutil.Flags.Token, _ = cmd.Flags().GetString("token")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
	},
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Server URL (overrides current context)")
	rootCmd.PersistentFlags().String("token", "", "Access token (overrides stored credentials)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(contextcmd.Cmd)
	rootCmd.AddCommand(usercmd.Cmd)
	rootCmd.AddCommand(rulecmd.Cmd)
	rootCmd.AddCommand(volumecmd.Cmd)
	rootCmd.AddCommand(sharecmd.Cmd)
	rootCmd.AddCommand(settingscmd.Cmd)
	rootCmd.AddCommand(filescmd.Cmd)
	rootCmd.AddCommand(completionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command (used for docs generation).
func GetRootCmd() *cobra.Command {
	return rootCmd
}
