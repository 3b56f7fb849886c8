package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/holdings-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Convert submissions as they appear in a directory",
	Long: `Watch a directory tree (default: the configured raw directory) and
convert every submission text file that is created or rewritten in it,
using the configured output settings. Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Duration("settle", filesystem.DefaultSettle, "quiet period before a file is converted")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return notConfigured("conversion service")
	}

	settle, err := cmd.Flags().GetDuration("settle")
	if err != nil {
		return fmt.Errorf("getting settle flag: %w", err)
	}

	dir, err := watchDir(args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	watcher := filesystem.NewWatcher(dir, settle)
	paths, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for submissions (ctrl+c to stop)\n", dir)
	for path := range paths {
		result, err := conversionService.Extract(ctx, path, driving.ExtractOptions{})
		if err != nil {
			failColor.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", path, err)
			continue
		}
		printExtractResult(cmd, path, result)
	}
	return nil
}

func watchDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if settingsService == nil {
		return "", notConfigured("settings service")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return "", fmt.Errorf("loading settings: %w", err)
	}
	return settings.Paths.RawDir, nil
}
