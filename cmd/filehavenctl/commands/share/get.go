package share

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/output"
)

var getCmd = &cobra.Command{
	Use:   "get <token>",
	Short: "Show details of a share",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cmdutil.GetAuthenticatedClient()
		if err != nil {
			return err
		}

		s, err := client.GetShare(args[0])
		if err != nil {
			return err
		}

		kind := "file"
		if s.IsDirectory {
			kind = "directory"
		}
		expires := "never"
		if s.ExpiresAt != nil {
			expires = s.ExpiresAt.Format(timeFormat)
		}

		table := output.NewTableData("FIELD", "VALUE")
		table.AddRow("Token", s.Token)
		table.AddRow("Owner ID", s.OwnerID)
		table.AddRow("Source", s.Source)
		if s.VolumeID != "" {
			table.AddRow("Volume ID", s.VolumeID)
		}
		table.AddRow("Source Path", s.SourcePath)
		table.AddRow("Type", kind)
		table.AddRow("Sharing", s.SharingType)
		table.AddRow("Access Mode", s.AccessMode)
		table.AddRow("Expires", expires)
		table.AddRow("Created", s.CreatedAt.Format(timeFormat))
		if len(s.UserGrants) > 0 {
			ids := make([]string, 0, len(s.UserGrants))
			for _, g := range s.UserGrants {
				ids = append(ids, g.UserID)
			}
			table.AddRow("Granted Users", strings.Join(ids, ", "))
		}

		return cmdutil.PrintResource(os.Stdout, s, table)
	},
}
