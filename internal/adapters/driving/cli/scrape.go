package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [manifest]...",
	Short: "Download submissions listed in filing-link manifests",
	Long: `Download 13F-HR complete submission text files from EDGAR.

A manifest is a YAML (.yaml, .yml) or Excel (.xlsx) file listing filing
index page URLs with their form type. Each matching filing page is fetched,
its submission text link followed, and the submission saved as
<raw_dir>/<target>/<period>.txt, where the target comes from the first
routing rule whose keyword appears in the manifest name.

With no arguments every manifest in the configured links directory is
processed. EDGAR requires a descriptive User-Agent; set scrape.user_agent.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	if scrapeService == nil {
		return notConfigured("scrape service")
	}

	ctx := commandContext(cmd)

	var reports []driving.ScrapeReport
	var scrapeErr error
	if len(args) == 0 {
		// Partial reports are still printed when some manifests fail.
		reports, scrapeErr = scrapeService.ScrapeAll(ctx)
	} else {
		for _, manifest := range args {
			report, err := scrapeService.Scrape(ctx, manifest)
			if report != nil {
				reports = append(reports, *report)
			}
			if err != nil {
				scrapeErr = fmt.Errorf("scraping %s: %w", manifest, err)
				break
			}
		}
	}

	failed := 0
	for _, r := range reports {
		printScrapeReport(cmd, r)
		failed += len(r.Failures)
	}

	switch {
	case scrapeErr != nil:
		return fmt.Errorf("scrape failed: %w", scrapeErr)
	case len(reports) == 0:
		cmd.Println("No manifests found.")
	case failed > 0:
		return fmt.Errorf("%d filings could not be downloaded", failed)
	}
	return nil
}

func printScrapeReport(cmd *cobra.Command, r driving.ScrapeReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s -> %s: %d saved, %d skipped, %d failed\n",
		r.Manifest, r.Target, len(r.Saved), r.Skipped, len(r.Failures))
	for _, path := range r.Saved {
		fmt.Fprintf(out, "  saved %s\n", path)
	}
	for _, f := range r.Failures {
		failColor.Fprintf(cmd.ErrOrStderr(), "  ✗ %s: %v\n", f.URL, f.Err)
	}
}
