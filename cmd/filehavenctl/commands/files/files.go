// Package files implements the 'filehavenctl files' commands for
// browsing and manipulating files through the server's access engine.
package files

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/internal/bytesize"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

// Cmd is the parent command for file operations.
var Cmd = &cobra.Command{
	Use:   "files",
	Short: "Browse and manage files",
	Long: `Browse and manage files through the server.

All operations go through the server's access engine: hidden entries
never appear in listings, and writes are rejected on read-only paths.`,
}

func init() {
	Cmd.AddCommand(lsCmd)
	Cmd.AddCommand(checkCmd)
	Cmd.AddCommand(downloadCmd)
	Cmd.AddCommand(uploadCmd)
	Cmd.AddCommand(mkdirCmd)
	Cmd.AddCommand(mvCmd)
	Cmd.AddCommand(rmCmd)
}

const timeFormat = "2006-01-02 15:04"

// ItemList renders directory entries as a table.
type ItemList []apiclient.Item

// Headers implements output.TableRenderer.
func (l ItemList) Headers() []string {
	return []string{"NAME", "KIND", "SIZE", "MODIFIED"}
}

// Rows implements output.TableRenderer.
func (l ItemList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, item := range l {
		size := "-"
		if !item.IsDirectory {
			size = bytesize.ByteSize(item.Size).String()
		}
		rows = append(rows, []string{
			item.Name,
			item.Kind,
			size,
			item.ModTime.Format(timeFormat),
		})
	}
	return rows
}
