// Command holdings converts SEC 13F-HR submissions into holdings workbooks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/archive"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/edgar"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/input"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/manifest"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/routing"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/workbook"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/services"
	"github.com/custodia-labs/holdings-cli/internal/logger"
	"github.com/custodia-labs/holdings-cli/internal/parsers"
	"github.com/custodia-labs/holdings-cli/internal/parsers/splitter"
	"github.com/custodia-labs/holdings-cli/internal/postprocessors"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// buildServices wires the adapters for configDir into the services the
// commands drive.
func buildServices(configDir string) (*cli.Services, func() error, error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Config %s", configStore.Path())

	dataDir := settings.Paths.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline, err := processors.BuildPipeline(
		postprocessors.DefaultNames(settings.Processors),
		postprocessors.DefaultConfigs(settings.Processors),
	)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("building processors: %w", err)
	}

	policy := settings.Output.Overwrite
	conversionService := services.NewConversionService(
		splitter.New(),
		parsers.DefaultRegistry(),
		pipeline,
		input.NewReader(),
		[]driven.WorkbookWriter{workbook.NewXLSXWriter(policy), workbook.NewCSVWriter(policy)},
		store,
		settingsService,
	)

	scrapeService := services.NewScrapeService(
		edgar.NewFetcher(edgar.Config{
			UserAgent: settings.Scrape.UserAgent,
			Timeout:   settings.Scrape.Timeout,
		}),
		edgar.NewPageParser(settings.Scrape.BaseURL),
		[]driven.ManifestReader{manifest.NewYAMLReader(), manifest.NewXLSXReader()},
		routing.NewRouter(settings.Routes),
		archive.NewArchive(settings.Paths.RawDir, policy),
		settingsService,
	)

	return &cli.Services{
		Conversion: conversionService,
		Catalog:    services.NewCatalogService(store),
		Titles:     services.NewTitleService(),
		Scrape:     scrapeService,
		Settings:   settingsService,
		Config:     configStore,
	}, store.Close, nil
}
