package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceFactory_ReceivesConfigDir(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	injected := Services{
		Conversion: conversionService,
		Catalog:    catalogService,
		Titles:     titleService,
		Scrape:     env.scrape,
		Settings:   settingsService,
		Config:     configStore,
	}

	var gotDir string
	closed := false
	SetServiceFactory(func(dir string) (*Services, func() error, error) {
		gotDir = dir
		return &injected, func() error { closed = true; return nil }, nil
	})
	defer SetServiceFactory(nil)

	_, _, err := execute(t, "--config-dir", "/tmp/holdings-test", "config", "get", "output.format")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/holdings-test", gotDir)

	closeServices()
	assert.True(t, closed)
}

func TestServiceFactory_Error(t *testing.T) {
	SetServiceFactory(func(string) (*Services, func() error, error) {
		return nil, nil, errors.New("catalog locked")
	})
	defer SetServiceFactory(nil)

	_, _, err := execute(t, "filings", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "initialising services: catalog locked")
}

func TestServiceFactory_SkippedByVersion(t *testing.T) {
	called := false
	SetServiceFactory(func(string) (*Services, func() error, error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetServiceFactory(nil)

	stdout, _, err := execute(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
	assert.Contains(t, stdout, "holdings version")
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestRootCmd_Commands(t *testing.T) {
	want := []string{"browse", "config", "convert", "filings", "inspect", "mcp", "scrape", "serve", "titles", "version", "watch"}
	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}
	assert.Subset(t, got, want)
}
