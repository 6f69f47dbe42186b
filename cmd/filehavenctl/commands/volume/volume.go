// Package volume implements the 'filehavenctl volume' commands for
// managing per-user volumes.
package volume

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/pkg/apiclient"
)

// Cmd is the parent command for volume management.
var Cmd = &cobra.Command{
	Use:   "volume",
	Short: "Manage user volumes",
	Long: `Manage per-user volumes.

A volume mounts a server directory under the volumes/ segment of a
user's personal space, with an access mode of readwrite or readonly.
Volumes only
appear when the user-volumes feature is enabled. Requires the admin role.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(deleteCmd)
}

// VolumeList renders a list of volumes as a table.
type VolumeList []apiclient.Volume

// Headers implements output.TableRenderer.
func (l VolumeList) Headers() []string {
	return []string{"ID", "USER ID", "LABEL", "MODE", "ROOT PATH"}
}

// Rows implements output.TableRenderer.
func (l VolumeList) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, v := range l {
		rows = append(rows, []string{v.ID, v.UserID, v.Label, v.AccessMode, v.RootPath})
	}
	return rows
}
