// Package context implements the 'filehavenctl context' commands for
// managing stored server contexts.
package context

import (
	"github.com/spf13/cobra"
)

// Cmd is the parent command for context management.
var Cmd = &cobra.Command{
	Use:   "context",
	Short: "Manage server contexts",
	Long: `Manage stored server contexts.

A context holds the server URL and credentials for one FileHaven server.
Log in to multiple servers and switch between them with 'context use'.`,
}

func init() {
	Cmd.AddCommand(currentCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(useCmd)
	Cmd.AddCommand(renameCmd)
	Cmd.AddCommand(deleteCmd)
}

// ContextInfo describes one stored context for output rendering.
type ContextInfo struct {
	Name      string `json:"name" yaml:"name"`
	ServerURL string `json:"server_url" yaml:"server_url"`
	Username  string `json:"username,omitempty" yaml:"username,omitempty"`
	LoggedIn  bool   `json:"logged_in" yaml:"logged_in"`
	Current   bool   `json:"current" yaml:"current"`
}

// ContextList renders a list of contexts as a table.
type ContextList []ContextInfo

// Headers implements output.TableRenderer.
func (l ContextList) Headers() []string {
	return []string{"CURRENT", "NAME", "SERVER", "USERNAME", "LOGGED IN"}
}

// Rows implements output.TableRenderer.
func (l ContextList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, c := range l {
		current := ""
		if c.Current {
			current = "*"
		}
		loggedIn := "no"
		if c.LoggedIn {
			loggedIn = "yes"
		}
		username := c.Username
		if username == "" {
			username = "-"
		}
		rows = append(rows, []string{current, c.Name, c.ServerURL, username, loggedIn})
	}
	return rows
}
