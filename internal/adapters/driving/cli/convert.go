package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert submission text files to workbooks",
	Long: `Convert one or more 13F-HR complete submission text files (.txt or .txt.gz).

Each submission is written to <output_dir>/<issuer>/<issuer>_<period>.xlsx
(or three csv files with --format csv) and recorded in the filing catalog.
The issuer is taken from the directory the submission was downloaded into.

Holdings entries missing a required field are skipped and reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the record sets of a submission without writing files",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	convertCmd.Flags().StringP("out-dir", "o", "", "output directory (default from config)")
	convertCmd.Flags().StringP("format", "f", "", "output format: xlsx or csv (default from config)")
	convertCmd.Flags().Bool("no-catalog", false, "do not record the filing in the catalog")
	inspectCmd.Flags().Bool("json", false, "print the record sets as JSON")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return notConfigured("conversion service")
	}

	opts, err := extractOptions(cmd)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	failed := 0
	for _, path := range args {
		result, err := conversionService.Extract(ctx, path, opts)
		if err != nil {
			failed++
			failColor.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
			continue
		}
		printExtractResult(cmd, path, result)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(args))
	}
	return nil
}

func extractOptions(cmd *cobra.Command) (driving.ExtractOptions, error) {
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return driving.ExtractOptions{}, fmt.Errorf("getting out-dir flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return driving.ExtractOptions{}, fmt.Errorf("getting format flag: %w", err)
	}
	noCatalog, err := cmd.Flags().GetBool("no-catalog")
	if err != nil {
		return driving.ExtractOptions{}, fmt.Errorf("getting no-catalog flag: %w", err)
	}

	opts := driving.ExtractOptions{OutputDir: outDir, SkipCatalog: noCatalog}
	if format != "" {
		opts.Format = domain.OutputFormat(strings.ToLower(format))
		if !opts.Format.IsValid() {
			return opts, fmt.Errorf("%w: unknown format %q (use xlsx or csv)", domain.ErrInvalidInput, format)
		}
	}
	return opts, nil
}

func printExtractResult(cmd *cobra.Command, path string, result *driving.ExtractResult) {
	out := cmd.OutOrStdout()
	conv := result.Conversion

	okColor.Fprintf(out, "✓ %s", path)
	fmt.Fprintf(out, " (%s, period %s): %d holdings\n", result.Issuer, result.Period, len(conv.Holdings.Rows))

	if len(result.Paths) == 0 {
		fmt.Fprintln(out, "  output exists, skipped")
	}
	for _, p := range result.Paths {
		fmt.Fprintf(out, "  wrote %s\n", p)
	}
	if result.Filing != nil {
		fmt.Fprintf(out, "  catalogued %s\n", result.Filing.AccessionNumber)
	}
	printDiagnostics(cmd, conv.Diagnostics)
}

func printDiagnostics(cmd *cobra.Command, diags []domain.Diagnostic) {
	for _, d := range diags {
		warnColor.Fprintf(cmd.ErrOrStderr(), "  ! %s\n", d.String())
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return notConfigured("conversion service")
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	conv, err := conversionService.ConvertFile(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("converting %s: %w", args[0], err)
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(conv.RecordSets())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sections:\n")
	for _, s := range conv.Sections {
		if s.Type == "" {
			fmt.Fprintf(out, "  %s\n", s.Kind)
			continue
		}
		fmt.Fprintf(out, "  %s (%s)\n", s.Kind, s.Type)
	}

	fmt.Fprintf(out, "\nHeader:\n")
	if conv.HeaderRecord != nil {
		for _, f := range domain.HeaderFields() {
			if v := conv.HeaderRecord.Get(f); v != "" {
				fmt.Fprintf(out, "  %-24s %s\n", f, v)
			}
		}
	}

	fmt.Fprintf(out, "\nBody: %d fields\n", len(conv.Body.Rows))
	fmt.Fprintf(out, "Holdings: %d rows\n", len(conv.Holdings.Rows))
	printDiagnostics(cmd, conv.Diagnostics)
	return nil
}
