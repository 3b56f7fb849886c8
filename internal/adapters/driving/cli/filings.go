package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

var filingsCmd = &cobra.Command{
	Use:   "filings",
	Short: "Query the catalog of converted filings",
}

var filingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued filings",
	Args:  cobra.NoArgs,
	RunE:  runFilingsList,
}

var filingsShowCmd = &cobra.Command{
	Use:   "show <accession>",
	Short: "Show a filing and its holdings",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilingsShow,
}

var filingsCUSIPCmd = &cobra.Command{
	Use:   "cusip <cusip>",
	Short: "Find holdings of a security across filings",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilingsCUSIP,
}

var filingsDeleteCmd = &cobra.Command{
	Use:   "delete <accession>",
	Short: "Remove a filing from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilingsDelete,
}

func init() {
	for _, c := range []*cobra.Command{filingsListCmd, filingsShowCmd, filingsCUSIPCmd} {
		c.Flags().Bool("json", false, "print JSON")
	}
	filingsCmd.AddCommand(filingsListCmd)
	filingsCmd.AddCommand(filingsShowCmd)
	filingsCmd.AddCommand(filingsCUSIPCmd)
	filingsCmd.AddCommand(filingsDeleteCmd)
	rootCmd.AddCommand(filingsCmd)
}

func runFilingsList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return notConfigured("catalog service")
	}

	filings, err := catalogService.ListFilings(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing filings: %w", err)
	}
	if printed, err := maybeJSON(cmd, filings); printed || err != nil {
		return err
	}

	if len(filings) == 0 {
		cmd.Println("No filings catalogued.")
		return nil
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ACCESSION\tFILER\tPERIOD\tTYPE\tHOLDINGS\tVALUE")
	for _, f := range filings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			f.AccessionNumber, f.FilerName, f.Period, f.SubmissionType,
			f.HoldingCount, humanize.Comma(f.TotalValue))
	}
	return tw.Flush()
}

func runFilingsShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return notConfigured("catalog service")
	}

	ctx := commandContext(cmd)
	filing, err := catalogService.GetFiling(ctx, args[0])
	if err != nil {
		return fmt.Errorf("getting filing %s: %w", args[0], err)
	}
	holdings, err := catalogService.GetHoldings(ctx, args[0])
	if err != nil {
		return fmt.Errorf("getting holdings of %s: %w", args[0], err)
	}

	payload := struct {
		Filing   *domain.StoredFiling   `json:"filing"`
		Holdings []domain.HoldingRecord `json:"holdings"`
	}{filing, holdings}
	if printed, err := maybeJSON(cmd, payload); printed || err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", filing.AccessionNumber, filing.FilerName)
	fmt.Fprintf(out, "CIK %s, %s, period %s\n", filing.CIK, filing.SubmissionType, filing.Period)
	fmt.Fprintf(out, "Source %s\n", filing.SourcePath)
	if filing.OutputPath != "" {
		fmt.Fprintf(out, "Output %s\n", filing.OutputPath)
	}
	fmt.Fprintf(out, "%d holdings (%d skipped), total value %s\n\n",
		filing.HoldingCount, filing.SkippedCount, humanize.Comma(filing.TotalValue))

	tw := newTable(out)
	fmt.Fprintln(tw, "ISSUER\tCLASS\tCUSIP\tVALUE\tAMOUNT\tTYPE\tPUT/CALL\tDISCRETION")
	for _, h := range holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			h.IssuerName, h.ClassTitle, h.CUSIP, humanize.Comma(h.Value),
			humanize.Comma(h.Amount), h.AmountType, h.PutCall, h.InvestmentDiscretion)
	}
	return tw.Flush()
}

func runFilingsCUSIP(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return notConfigured("catalog service")
	}

	matches, err := catalogService.FindByCUSIP(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("finding %s: %w", args[0], err)
	}
	if printed, err := maybeJSON(cmd, matches); printed || err != nil {
		return err
	}

	if len(matches) == 0 {
		cmd.Printf("No catalogued holdings for %s.\n", args[0])
		return nil
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ACCESSION\tFILER\tPERIOD\tISSUER\tCLASS\tVALUE\tAMOUNT")
	for _, m := range matches {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Filing.AccessionNumber, m.Filing.FilerName, m.Filing.Period,
			m.Holding.IssuerName, m.Holding.ClassTitle,
			humanize.Comma(m.Holding.Value), humanize.Comma(m.Holding.Amount))
	}
	return tw.Flush()
}

func runFilingsDelete(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return notConfigured("catalog service")
	}

	if err := catalogService.DeleteFiling(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("deleting %s: %w", args[0], err)
	}
	cmd.Printf("Deleted %s.\n", args[0])
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// maybeJSON prints v as JSON when --json is set.
func maybeJSON(cmd *cobra.Command, v any) (bool, error) {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil || !asJSON {
		return false, nil //nolint:nilerr // commands without the flag print text
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}
