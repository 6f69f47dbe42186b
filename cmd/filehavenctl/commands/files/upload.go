package files

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var uploadCmd = &cobra.Command{
	Use:     "upload <local-file> <remote-dir>",
	Aliases: []string{"put"},
	Short:   "Upload a file",
	Example: `  # Upload report.pdf into /reports
  filehavenctl files upload report.pdf /reports`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	localPath, remoteDir := args[0], args[1]

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer f.Close()

	remotePath := path.Join(remoteDir, path.Base(localPath))
	if err := client.Upload(remotePath, f); err != nil {
		return err
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Uploaded %s to %s", localPath, remotePath))
	return nil
}
