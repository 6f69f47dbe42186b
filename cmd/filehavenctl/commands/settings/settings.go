// Package settings implements the 'filehavenctl settings' commands.
package settings

import (
	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

// Cmd is the parent command for feature settings.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage feature settings",
	Long: `Manage server feature settings.

Feature settings toggle optional behavior at runtime, such as per-user
volumes and thumbnail generation. Requires the admin role.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(setCmd)
}

// SettingsView renders the feature settings as a table.
type SettingsView apiclient.FeatureSettings

// Headers implements output.TableRenderer.
func (v SettingsView) Headers() []string {
	return []string{"SETTING", "VALUE"}
}

// Rows implements output.TableRenderer.
func (v SettingsView) Rows() [][]string {
	return [][]string{
		{"user-volumes", cmdutil.BoolToYesNo(v.UserVolumesEnabled)},
		{"thumbnails", cmdutil.BoolToYesNo(v.ThumbnailsEnabled)},
	}
}
