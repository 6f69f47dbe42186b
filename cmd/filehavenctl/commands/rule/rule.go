// Package rule implements the 'filehavenctl rule' commands for managing
// path permission rules.
package rule

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

// Cmd is the parent command for rule management.
var Cmd = &cobra.Command{
	Use:   "rule",
	Short: "Manage path permission rules",
	Long: `Manage path permission rules.

Rules map path patterns to a permission: rw, ro, or hidden. They are
evaluated in position order and the first matching rule wins. Paths not
matched by any rule default to rw. Requires the admin role.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(reorderCmd)
}

// RuleList renders a list of rules as a table, in evaluation order.
type RuleList []apiclient.Rule

// Headers implements output.TableRenderer.
func (l RuleList) Headers() []string {
	return []string{"POSITION", "ID", "PATH", "RECURSIVE", "PERMISSIONS"}
}

// Rows implements output.TableRenderer.
func (l RuleList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, r := range l {
		rows = append(rows, []string{
			strconv.Itoa(r.Position),
			r.ID,
			r.Path,
			cmdutil.BoolToYesNo(r.Recursive),
			r.Permissions,
		})
	}
	return rows
}

func validPermissions(p string) bool {
	switch p {
	case "rw", "ro", "hidden":
		return true
	}
	return false
}
