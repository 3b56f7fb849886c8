// Package cli provides the holdings command line interface.
// Commands are package-level cobra commands registered in init; the
// services they drive are injected with SetServices or built lazily by a
// ServiceFactory once the persistent flags are parsed.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// Services injected into the commands.
var (
	conversionService driving.ConversionService
	catalogService    driving.CatalogService
	titleService      driving.TitleService
	scrapeService     driving.ScrapeService
	settingsService   driving.SettingsService
	configStore       driven.ConfigStore
)

// Persistent flag values.
var (
	verbose   bool
	configDir string
)

// skipServices marks commands that run without building services.
const skipServices = "skip-services"

// errNotConfigured is wrapped by commands whose service was not injected.
var errNotConfigured = errors.New("service not configured")

// Services groups the driving ports and the config store used by the commands.
type Services struct {
	Conversion driving.ConversionService
	Catalog    driving.CatalogService
	Titles     driving.TitleService
	Scrape     driving.ScrapeService
	Settings   driving.SettingsService
	Config     driven.ConfigStore
}

// ServiceFactory builds the services for a config directory. The returned
// close function releases resources such as the catalog database.
type ServiceFactory func(configDir string) (*Services, func() error, error)

var (
	serviceFactory ServiceFactory
	closeFn        func() error
)

var rootCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Convert SEC 13F-HR submissions into holdings workbooks",
	Long: `holdings parses SEC Form 13F-HR complete submission text files into
three record sets: the filing header, the 13F-HR body and the holdings
information table. Results are written as an xlsx workbook or csv files and
recorded in a local catalog that can be queried, browsed and served.

Submissions can be downloaded from EDGAR with filing-link manifests.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.holdings)")
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	conversionService = s.Conversion
	catalogService = s.Catalog
	titleService = s.Titles
	scrapeService = s.Scrape
	settingsService = s.Settings
	configStore = s.Config
}

// SetServiceFactory registers the factory used to build services after
// flag parsing, so --config-dir can select the configuration.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with a context that commands use
// for cancellation.
func ExecuteContext(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetColor(isTerminal(os.Stderr) && !color.NoColor)

	if serviceFactory == nil || cmd.Annotations[skipServices] == "true" {
		return nil
	}

	services, closeServices, err := serviceFactory(configDir)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	SetServices(services)
	closeFn = closeServices
	return nil
}

func closeServices() {
	if closeFn == nil {
		return
	}
	if err := closeFn(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	closeFn = nil
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// commandContext returns the command's context, or Background when the
// command was run without one (as in tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// notConfigured reports a missing service by name.
func notConfigured(name string) error {
	return fmt.Errorf("%s %w", name, errNotConfigured)
}
