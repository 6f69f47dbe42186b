package files

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:     "download <path>",
	Aliases: []string{"get"},
	Short:   "Download a file",
	Example: `  # Download into the current directory
  filehavenctl files download /reports/q3.pdf

  # Download to stdout
  filehavenctl files download /reports/q3.pdf --to -`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadOutput, "to", "", "Destination file ('-' for stdout; defaults to the base name)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	remotePath := args[0]
	body, err := client.Download(remotePath)
	if err != nil {
		return err
	}
	defer body.Close()

	if downloadOutput == "-" {
		_, err := io.Copy(os.Stdout, body)
		return err
	}

	dest := downloadOutput
	if dest == "" {
		dest = path.Base(remotePath)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()

	n, err := io.Copy(f, body)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	cmdutil.PrintSuccess(fmt.Sprintf("Downloaded %s (%d bytes) to %s", remotePath, n, dest))
	return nil
}
