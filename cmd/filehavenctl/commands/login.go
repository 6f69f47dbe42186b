package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/credentials"
	"github.com/filehaven/filehaven/internal/cli/prompt"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	loginServer   string
	loginUsername string
	loginContext  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a FileHaven server",
	Long: `Authenticate with a FileHaven server and store the credentials locally.

The credentials are stored as a named context. Use 'filehavenctl context'
commands to switch between multiple servers.`,
	Example: `  # Log in to a server, prompting for username and password
  filehavenctl login --server http://localhost:8080

  # Log in with an explicit username
  filehavenctl login --server https://files.example.com --username alice`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Server URL")
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "Username")
	loginCmd.Flags().StringVar(&loginContext, "context", "", "Context name to store the credentials under")
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := credentials.NewStore()
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}

	// Resolve the server URL: flag, then current context
	serverURL := loginServer
	if serverURL == "" {
		if ctx, err := store.GetCurrentContext(); err == nil {
			serverURL = ctx.ServerURL
		}
	}
	if serverURL == "" {
		serverURL, err = prompt.InputRequired("Server URL")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	username := loginUsername
	if username == "" {
		username, err = prompt.InputRequired("Username")
		if err != nil {
			return cmdutil.HandleAbort(err)
		}
	}

	password, err := prompt.PasswordWithValidation("Password", 1)
	if err != nil {
		return cmdutil.HandleAbort(err)
	}

	client := apiclient.New(serverURL)
	tokens, err := client.Login(username, password)
	if err != nil {
		if apiErr, ok := err.(*apiclient.APIError); ok && apiErr.IsAuthError() {
			return fmt.Errorf("login failed: invalid username or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	contextName := loginContext
	if contextName == "" {
		contextName = credentials.GenerateContextName(serverURL)
	}

	ctx := &credentials.Context{
		ServerURL:    serverURL,
		Username:     tokens.User.Username,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
	}
	if err := store.SetContext(contextName, ctx); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	if err := store.UseContext(contextName); err != nil {
		return fmt.Errorf("failed to activate context: %w", err)
	}

	cmdutil.PrintSuccessWithInfo(
		fmt.Sprintf("Logged in to %s as %s", serverURL, tokens.User.Username),
		fmt.Sprintf("Context: %s", contextName),
		fmt.Sprintf("Credentials stored in %s", store.ConfigPath()),
	)
	return nil
}
