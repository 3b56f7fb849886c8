package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/tui"
)

var errNotTerminal = errors.New("browse needs an interactive terminal")

var browseCmd = &cobra.Command{
	Use:   "browse [accession]",
	Short: "Browse catalogued filings interactively",
	Long: `Open the interactive browser over the filing catalog. Select a filing
to see its holdings, or press / to look up a CUSIP across filings.
An accession number opens that filing directly.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return notConfigured("catalog service")
	}
	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	app, err := tui.NewApp(&tui.Ports{Catalog: catalogService})
	if err != nil {
		return err
	}
	app = app.WithContext(commandContext(cmd))
	if len(args) > 0 {
		app = app.WithAccession(args[0])
	}
	return app.Run()
}
