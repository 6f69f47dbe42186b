package volume

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	createUserID   string
	createLabel    string
	createMode     string
	createRootPath string
)

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add"},
	Short:   "Create a user volume",
	Example: `  # Mount a read-only dataset into alice's personal space
  filehavenctl volume create --user <alice-id> --label datasets --mode readonly --root-path /srv/datasets`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createUserID, "user", "", "Owning user ID (required)")
	createCmd.Flags().StringVar(&createLabel, "label", "", "Volume label, shown as the directory name (required)")
	createCmd.Flags().StringVar(&createMode, "mode", "readwrite", "Access mode: readwrite or readonly")
	createCmd.Flags().StringVar(&createRootPath, "root-path", "", "Server directory backing the volume (required)")
	_ = createCmd.MarkFlagRequired("user")
	_ = createCmd.MarkFlagRequired("label")
	_ = createCmd.MarkFlagRequired("root-path")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if createMode != "readwrite" && createMode != "readonly" {
		return fmt.Errorf("invalid mode '%s': must be readwrite or readonly", createMode)
	}

	v, err := client.CreateVolume(apiclient.CreateVolumeRequest{
		UserID:     createUserID,
		Label:      createLabel,
		AccessMode: createMode,
		RootPath:   createRootPath,
	})
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, v,
		fmt.Sprintf("Volume '%s' created successfully", v.Label))
}
