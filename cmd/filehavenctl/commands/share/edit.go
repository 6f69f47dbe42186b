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
	editSharing     string
	editMode        string
	editExpiresIn   time.Duration
	editClearExpiry bool
	editUsers       string
)

var editCmd = &cobra.Command{
	Use:   "edit <token>",
	Short: "Edit a share link",
	Example: `  # Downgrade a share to read-only
  filehavenctl share edit <token> --mode readonly

  # Remove the expiry
  filehavenctl share edit <token> --clear-expiry`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editSharing, "sharing", "", "New sharing type: anyone or users")
	editCmd.Flags().StringVar(&editMode, "mode", "", "New access mode: readonly or readwrite")
	editCmd.Flags().DurationVar(&editExpiresIn, "expires-in", 0, "New expiry duration from now (e.g. 24h)")
	editCmd.Flags().BoolVar(&editClearExpiry, "clear-expiry", false, "Remove the expiry")
	editCmd.Flags().StringVar(&editUsers, "users", "", "Comma-separated user IDs replacing the grant list")
	editCmd.MarkFlagsMutuallyExclusive("expires-in", "clear-expiry")
}

func runEdit(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	req := apiclient.UpdateShareRequest{}
	changed := false

	if cmd.Flags().Changed("sharing") {
		if !validSharingType(editSharing) {
			return fmt.Errorf("invalid sharing type '%s': must be anyone or users", editSharing)
		}
		req.SharingType = &editSharing
		changed = true
	}
	if cmd.Flags().Changed("mode") {
		if !validAccessMode(editMode) {
			return fmt.Errorf("invalid mode '%s': must be readonly or readwrite", editMode)
		}
		req.AccessMode = &editMode
		changed = true
	}
	if cmd.Flags().Changed("expires-in") {
		expiresAt := time.Now().Add(editExpiresIn)
		req.ExpiresAt = &expiresAt
		changed = true
	}
	if editClearExpiry {
		req.ClearExpiry = true
		changed = true
	}
	if cmd.Flags().Changed("users") {
		userIDs := cmdutil.ParseCommaSeparatedList(editUsers)
		req.UserIDs = &userIDs
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change: specify at least one flag")
	}

	s, err := client.UpdateShare(args[0], req)
	if err != nil {
		return err
	}

	return cmdutil.PrintResourceWithSuccess(os.Stdout, s,
		fmt.Sprintf("Share %s updated successfully", s.Token))
}
