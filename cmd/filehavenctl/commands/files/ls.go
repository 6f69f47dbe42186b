package files

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filehaven/filehaven/cmd/filehavenctl/cmdutil"
	"github.com/filehaven/filehaven/internal/cli/output"
)

var lsLong bool

var lsCmd = &cobra.Command{
	Use:     "ls [path]",
	Aliases: []string{"list"},
	Short:   "List a directory",
	Long: `List a directory. Entries hidden from you by path rules are omitted,
and read-only shares suppress their write affordances.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "Also print the access summary for the directory")
}

func runLs(cmd *cobra.Command, args []string) error {
	client, err := cmdutil.GetAuthenticatedClient()
	if err != nil {
		return err
	}

	path := "/"
	if len(args) == 1 {
		path = args[0]
	}

	listing, err := client.Browse(path)
	if err != nil {
		return err
	}

	format, err := cmdutil.GetOutputFormatParsed()
	if err != nil {
		return err
	}
	if format != output.FormatTable {
		return cmdutil.PrintOutput(os.Stdout, listing, false, "", nil)
	}

	if lsLong && listing.Access != nil {
		fmt.Printf("Path:       %s\n", path)
		fmt.Printf("Permission: %s\n", listing.Access.EffectivePermission)
		fmt.Printf("Writable:   %s\n", cmdutil.BoolToYesNo(listing.Access.CanWrite))
		if listing.Share != nil {
			fmt.Printf("Shared:     via %s (%s)\n", listing.Share.Name, listing.Share.Mode)
		}
		fmt.Println()
	}

	if len(listing.Items) == 0 {
		fmt.Println("Empty directory.")
		return nil
	}
	return output.PrintTable(os.Stdout, ItemList(listing.Items))
}
