package settings

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var setCmd = &cobra.Command{
	Use:   "set <setting> <true|false>",
	Short: "Change a feature setting",
	Long: `Change a feature setting.

Available settings:
  user-volumes   Enable per-user volumes
  thumbnails     Enable thumbnail generation`,
	Example: `  # Enable per-user volumes
  filehavenctl settings set user-volumes true

  # Disable thumbnails
  filehavenctl settings set thumbnails false`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	name := args[0]
	value, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid value '%s': must be true or false", args[1])
	}

	req := apiclient.PatchSettingsRequest{}
	switch name {
	case "user-volumes":
		req.UserVolumesEnabled = &value
	case "thumbnails":
		req.ThumbnailsEnabled = &value
	default:
		return fmt.Errorf("unknown setting '%s': available settings are user-volumes, thumbnails", name)
	}

	settings, err := client.PatchSettings(req)
	if err != nil {
		return err
	}

	if err := cmdutil.PrintResourceWithSuccess(os.Stdout, settings,
		fmt.Sprintf("Setting '%s' set to %v", name, value)); err != nil {
		return err
	}
	return nil
}
