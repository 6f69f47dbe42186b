package share

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/pkg/apiclient"
)

var (
	createVolumeID  string
	createDirectory bool
	createSharing   string
	createMode      string
	createExpiresIn time.Duration
	createUsers     string
)

var createCmd = &cobra.Command{
	Use:     "create <source-path>",
	Aliases: []string{"add"},
	Short:   "Create a share link",
	Example: `  # Share a file with anyone, read-only
  filehavenctl share create /reports/q3.pdf

  # Share a directory with specific users, read-write, expiring in a week
  filehavenctl share create /projects/apollo --directory --sharing users \
    --users <id1>,<id2> --mode readwrite --expires-in 168h`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createVolumeID, "volume", "", "Share from this user volume instead of the shared volume")
	createCmd.Flags().BoolVar(&createDirectory, "directory", false, "The source path is a directory")
	createCmd.Flags().StringVar(&createSharing, "sharing", "anyone", "Sharing type: anyone or users")
	createCmd.Flags().StringVar(&createMode, "mode", "readonly", "Access mode: readonly or readwrite")
	createCmd.Flags().DurationVar(&createExpiresIn, "expires-in", 0, "Expiry duration from now (e.g. 24h); 0 means never")
	createCmd.Flags().StringVar(&createUsers, "users", "", "Comma-separated user IDs (required when --sharing users)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	if !validSharingType(createSharing) {
		return fmt.Errorf("invalid sharing type '%s': must be anyone or users", createSharing)
	}
	if !validAccessMode(createMode) {
		return fmt.Errorf("invalid mode '%s': must be readonly or readwrite", createMode)
	}

	userIDs := cmdutil.ParseCommaSeparatedList(createUsers)
	if createSharing == "users" && len(userIDs) == 0 {
		return fmt.Errorf("--sharing users requires --users with at least one user ID")
	}

	req := apiclient.CreateShareRequest{
		SourcePath:  args[0],
		IsDirectory: createDirectory,
		SharingType: createSharing,
		AccessMode:  createMode,
		UserIDs:     userIDs,
	}
	if createVolumeID != "" {
		req.Source = "user_volume"
		req.VolumeID = createVolumeID
	}
	if createExpiresIn > 0 {
		expiresAt := time.Now().Add(createExpiresIn)
		req.ExpiresAt = &expiresAt
	}

	s, err := client.CreateShare(req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, s,
		fmt.Sprintf("Share created: token %s", s.Token))
}
