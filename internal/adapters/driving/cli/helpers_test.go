package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/input"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/workbook"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
	"github.com/custodia-labs/holdings-cli/internal/core/services"
	"github.com/custodia-labs/holdings-cli/internal/parsers"
	"github.com/custodia-labs/holdings-cli/internal/parsers/splitter"
	"github.com/custodia-labs/holdings-cli/internal/postprocessors"
)

const testSubmission = `<SEC-HEADER>
ACCESSION NUMBER:		0001364742-24-000010
CONFORMED SUBMISSION TYPE:	13F-HR
CONFORMED PERIOD OF REPORT:	20231231
COMPANY CONFORMED NAME:		BlackRock Inc.
CENTRAL INDEX KEY:		0001364742
</SEC-HEADER>
<DOCUMENT>
<TYPE>INFORMATION TABLE
<infoTable>
<nameOfIssuer>APPLE INC</nameOfIssuer>
<titleOfClass>COM</titleOfClass>
<cusip>037833100</cusip>
<value>1000</value>
<sshPrnamt>50</sshPrnamt>
<sshPrnamtType>SH</sshPrnamtType>
<investmentDiscretion>SOLE</investmentDiscretion>
</infoTable>
<infoTable>
<nameOfIssuer>ACME WARRANTS</nameOfIssuer>
<titleOfClass>*W EXP 01/15/2025</titleOfClass>
<cusip>000000AA1</cusip>
<value>25</value>
</infoTable>
<infoTable>
<nameOfIssuer>NO CUSIP CORP</nameOfIssuer>
<titleOfClass>COM</titleOfClass>
</infoTable>
</DOCUMENT>
`

const testAccession = "0001364742-24-000010"

// testEnv holds the services injected by setupTestServices.
type testEnv struct {
	rawDir    string
	outputDir string
	filings   *memory.FilingStore
	config    *memory.ConfigStore
	scrape    *mockScrapeService
}

// setupTestServices injects real services over in-memory stores and
// temporary directories. The returned function restores the previous state.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		rawDir:    filepath.Join(root, "raw"),
		outputDir: filepath.Join(root, "out"),
		filings:   memory.NewFilingStore(),
		config:    memory.NewConfigStore(),
		scrape:    &mockScrapeService{},
	}

	settings := services.NewSettingsService(env.config)
	defaults := settings.GetDefaults()
	defaults.Paths.RawDir = env.rawDir
	defaults.Paths.OutputDir = env.outputDir
	defaults.Output.Format = domain.OutputCSV
	require.NoError(t, settings.Save(&defaults))

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := registry.BuildPipeline(postprocessors.DefaultNames(defaults.Processors), nil)
	require.NoError(t, err)

	conversion := services.NewConversionService(
		splitter.New(),
		parsers.DefaultRegistry(),
		pipeline,
		input.NewReader(),
		[]driven.WorkbookWriter{workbook.NewCSVWriter(domain.OverwriteReplace)},
		env.filings,
		settings,
	)

	saved := Services{
		Conversion: conversionService,
		Catalog:    catalogService,
		Titles:     titleService,
		Scrape:     scrapeService,
		Settings:   settingsService,
		Config:     configStore,
	}
	SetServices(&Services{
		Conversion: conversion,
		Catalog:    services.NewCatalogService(env.filings),
		Titles:     services.NewTitleService(),
		Scrape:     env.scrape,
		Settings:   settings,
		Config:     env.config,
	})

	return env, func() { SetServices(&saved) }
}

// writeSubmission writes the test submission under rawDir/issuer.
func (e *testEnv) writeSubmission(t *testing.T, issuer string) string {
	t.Helper()
	dir := filepath.Join(e.rawDir, issuer)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "20231231.txt")
	require.NoError(t, os.WriteFile(path, []byte(testSubmission), 0o644))
	return path
}

// execute runs the root command with args and returns its output.
// Flags are reset first so values do not leak between tests.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

// executeWithInput is execute with stdin content.
func executeWithInput(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// mockScrapeService implements driving.ScrapeService.
type mockScrapeService struct {
	reports []driving.ScrapeReport
	err     error
	scraped []string
}

func (m *mockScrapeService) Scrape(_ context.Context, manifest string) (*driving.ScrapeReport, error) {
	m.scraped = append(m.scraped, manifest)
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.reports {
		if m.reports[i].Manifest == manifest {
			return &m.reports[i], nil
		}
	}
	return &driving.ScrapeReport{Manifest: manifest, Target: "blackrock"}, nil
}

func (m *mockScrapeService) ScrapeAll(_ context.Context) ([]driving.ScrapeReport, error) {
	return m.reports, m.err
}
