package volume

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	editLabel    string
	editMode     string
	editRootPath string
)

var editCmd = &cobra.Command{
	Use:   "edit <volume-id>",
	Short: "Edit a user volume",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editLabel, "label", "", "New volume label")
	editCmd.Flags().StringVar(&editMode, "mode", "", "New access mode: readwrite or readonly")
	editCmd.Flags().StringVar(&editRootPath, "root-path", "", "New backing directory")
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := apiclient.UpdateVolumeRequest{}
	if cmd.Flags().Changed("label") {
		req.Label = &editLabel
	}
	if cmd.Flags().Changed("mode") {
		if editMode != "readwrite" && editMode != "readonly" {
			return fmt.Errorf("invalid mode '%s': must be readwrite or readonly", editMode)
		}
		req.AccessMode = &editMode
	}
	if cmd.Flags().Changed("root-path") {
		req.RootPath = &editRootPath
	}

	if req.Label == nil && req.AccessMode == nil && req.RootPath == nil {
		return fmt.Errorf("nothing to change: specify at least one flag")
	}

	v, err := client.UpdateVolume(args[0], req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, v,
		fmt.Sprintf("Volume '%s' updated successfully", v.Label))
}
