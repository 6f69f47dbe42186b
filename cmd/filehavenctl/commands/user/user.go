// Package user implements the 'filehavenctl user' commands.
package user

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

// Cmd is the parent command for user management.
var Cmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
	Long:  `Manage users on the FileHaven server. Most operations require the admin role.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(passwordCmd)
}

const timeFormat = "2006-01-02 15:04"

// UserList renders a list of users as a table.
type UserList []apiclient.User

// Headers implements output.TableRenderer.
func (l UserList) Headers() []string {
	return []string{"USERNAME", "ROLE", "ENABLED", "EMAIL", "DISPLAY NAME", "LAST LOGIN"}
}

// Rows implements output.TableRenderer.
func (l UserList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, u := range l {
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format(timeFormat)
		}
		rows = append(rows, []string{
			u.Username,
			u.Role,
			cmdutil.BoolToYesNo(u.Enabled),
			cmdutil.EmptyOr(u.Email, "-"),
			cmdutil.EmptyOr(u.DisplayName, "-"),
			lastLogin,
		})
	}
	return rows
}
