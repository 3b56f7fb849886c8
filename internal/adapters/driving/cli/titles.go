package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles",
	Short: "Work with security class titles",
}

var titlesNormalizeCmd = &cobra.Command{
	Use:   "normalize [title]...",
	Short: "Normalise warrant class titles",
	Long: `Normalise class titles the way converted holdings are normalised.

Warrant notation such as "*W EXP 01/15/2025" is rewritten to
"Warrant (expires 2025-01-15)", and "*W EXP 99/99/9999" to
"Warrant (expiry unknown)". Every other title is printed unchanged.
With no arguments, titles are read one per line from standard input.

Examples:
  holdings titles normalize "*W EXP 01/15/2025"
  cut -f2 titles.tsv | holdings titles normalize --category`,
	RunE: runTitlesNormalize,
}

func init() {
	titlesNormalizeCmd.Flags().BoolP("category", "c", false, "append the ETF/Warrant category")
	titlesNormalizeCmd.Flags().Bool("detailed", false, "use the detailed category taxonomy (implies --category)")
	titlesCmd.AddCommand(titlesNormalizeCmd)
	rootCmd.AddCommand(titlesCmd)
}

func runTitlesNormalize(cmd *cobra.Command, args []string) error {
	if titleService == nil {
		return notConfigured("title service")
	}

	category, err := cmd.Flags().GetBool("category")
	if err != nil {
		return fmt.Errorf("getting category flag: %w", err)
	}
	detailed, err := cmd.Flags().GetBool("detailed")
	if err != nil {
		return fmt.Errorf("getting detailed flag: %w", err)
	}
	category = category || detailed

	titles := args
	if len(titles) == 0 {
		titles, err = readTitles(cmd)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for i, normalized := range titleService.NormalizeAll(titles) {
		if category {
			fmt.Fprintf(out, "%s\t%s\n", normalized, titleService.Classify(titles[i], detailed))
			continue
		}
		fmt.Fprintln(out, normalized)
	}
	return nil
}

// readTitles reads one title per line from the command's input.
// An interactive terminal with no piped input is rejected.
func readTitles(cmd *cobra.Command) ([]string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return nil, errors.New("no titles given: pass them as arguments or pipe them on stdin")
	}

	var titles []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		titles = append(titles, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading titles: %w", err)
	}
	return titles, nil
}
