// Package share implements the 'filehavenctl share' commands.
package share

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/pkg/apiclient"
)

// Cmd is the parent command for share management.
var Cmd = &cobra.Command{
	Use:   "share",
	Short: "Manage share links",
	Long: `Manage share links.

A share grants access to a single file or directory through an opaque
token. The share's access mode is an upper bound: the effective
permission is capped by the owner's current permission on the path
every time the share is accessed.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(getCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
}

const timeFormat = "2006-01-02 15:04"

// ShareList renders a list of shares as a table.
type ShareList []apiclient.Share

// Headers implements output.TableRenderer.
func (l ShareList) Headers() []string {
	return []string{"TOKEN", "SOURCE PATH", "TYPE", "SHARING", "MODE", "EXPIRES"}
}

// Rows implements output.TableRenderer.
func (l ShareList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, s := range l {
		kind := "file"
		if s.IsDirectory {
			kind = "directory"
		}
		expires := "never"
		if s.ExpiresAt != nil {
			expires = s.ExpiresAt.Format(timeFormat)
		}
		rows = append(rows, []string{
			s.Token,
			s.SourcePath,
			kind,
			s.SharingType,
			s.AccessMode,
			expires,
		})
	}
	return rows
}

func validAccessMode(m string) bool {
	return m == "readonly" || m == "readwrite"
}

func validSharingType(t string) bool {
	return t == "anyone" || t == "users"
}
