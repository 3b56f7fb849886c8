package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/holdings-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"paths.raw_dir":                "filings/raw",
		"paths.data_dir":               "/var/lib/holdings",
		"scrape.timeout_seconds":       int64(45),
		"scrape.user_agent":            "research bot admin@example.org",
		"output.format":                "CSV",
		"output.overwrite":             "skip",
		"output.catalog":               false,
		"processors.category":          true,
		"processors.detailed_category": true,
		"routes.rules":                 []any{"state street=statestreet", "fidelity"},
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "filings/raw", settings.Paths.RawDir)
	assert.Equal(t, "/var/lib/holdings", settings.Paths.DataDir)
	assert.Equal(t, domain.DefaultSettings().Paths.OutputDir, settings.Paths.OutputDir)
	assert.Equal(t, 45*time.Second, settings.Scrape.Timeout)
	assert.Equal(t, "research bot admin@example.org", settings.Scrape.UserAgent)
	assert.Equal(t, domain.OutputCSV, settings.Output.Format)
	assert.Equal(t, domain.OverwriteSkip, settings.Output.Overwrite)
	assert.False(t, settings.Output.Catalog)
	assert.True(t, settings.Processors.Category)
	assert.True(t, settings.Processors.DetailedCategory)
	assert.Equal(t, []domain.RouteRule{
		{Keyword: "state street", Target: "statestreet"},
		{Keyword: "fidelity", Target: "fidelity"},
	}, settings.Routes)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStoreFrom(map[string]any{
		"output.format":          "pdf",
		"output.overwrite":       "maybe",
		"scrape.timeout_seconds": -5,
		"routes.rules":           []string{"=nothing", ""},
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Output.Format, settings.Output.Format)
	assert.Equal(t, defaults.Output.Overwrite, settings.Output.Overwrite)
	assert.Equal(t, defaults.Scrape.Timeout, settings.Scrape.Timeout)
	assert.Equal(t, defaults.Routes, settings.Routes)
}

func TestSettingsService_SaveAndReload(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultSettings()
	settings.Paths.DataDir = "/data"
	settings.Scrape.Timeout = 30 * time.Second
	settings.Output.Format = domain.OutputCSV
	settings.Output.Catalog = false
	settings.Routes = []domain.RouteRule{{Keyword: "ark", Target: "ark_invest"}}

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, 30, store.GetInt("scrape.timeout_seconds"))
	assert.Equal(t, []string{"ark=ark_invest"}, store.GetStringSlice("routes.rules"))

	reloaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *reloaded)
}

func TestSettingsService_Save_Nil(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_Save_OmitsEmptyDataDir(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultSettings()
	require.NoError(t, service.Save(&settings))

	_, ok := store.Get("paths.data_dir")
	assert.False(t, ok)
}

func TestSettingsService_SetOverwritePolicy(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetOverwritePolicy(domain.OverwriteReplace))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.OverwriteReplace, settings.Output.Overwrite)

	assert.Error(t, service.SetOverwritePolicy("clobber"))
}

func TestSettingsService_SetOutputFormat(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetOutputFormat(domain.OutputCSV))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.OutputCSV, settings.Output.Format)

	assert.Error(t, service.SetOutputFormat("pdf"))
}

func TestSettingsService_SetRoute(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetRoute("State Street", "statestreet"))
	require.NoError(t, service.SetRoute("BLACKROCK", "blk"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, []domain.RouteRule{
		{Keyword: "blackrock", Target: "blk"},
		{Keyword: "vanguard", Target: "vanguard"},
		{Keyword: "State Street", Target: "statestreet"},
	}, settings.Routes)
}

func TestSettingsService_SetRoute_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		name    string
		keyword string
		target  string
	}{
		{"empty keyword", "", "x"},
		{"empty target", "x", " "},
		{"separator in keyword", "a=b", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, service.SetRoute(tt.keyword, tt.target), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Validate(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.NoError(t, service.Validate())
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultSettings(), service.GetDefaults())
}

func TestParseRoutes(t *testing.T) {
	routes := ParseRoutes([]string{" blackrock = blk ", "vanguard", "", "=orphan", "tiaa="})

	assert.Equal(t, []domain.RouteRule{
		{Keyword: "blackrock", Target: "blk"},
		{Keyword: "vanguard", Target: "vanguard"},
		{Keyword: "tiaa", Target: "tiaa"},
	}, routes)
}

func TestSettingValues(t *testing.T) {
	settings := domain.DefaultSettings()
	values := SettingValues(&settings)

	got := make(map[string]any, len(values))
	for _, v := range values {
		got[v.Key] = v.Value
	}

	assert.Len(t, got, len(values), "keys are unique")
	assert.Equal(t, "data/raw_13F_HR", got["paths.raw_dir"])
	assert.Equal(t, "", got["paths.data_dir"])
	assert.Equal(t, 20, got["scrape.timeout_seconds"])
	assert.Equal(t, "xlsx", got["output.format"])
	assert.Equal(t, true, got["output.catalog"])
	assert.Equal(t, []string{"blackrock=blackrock", "vanguard=vanguard"}, got["routes.rules"])
	assert.Equal(t, "paths.raw_dir", values[0].Key)
}
