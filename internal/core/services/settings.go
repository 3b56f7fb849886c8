package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyRawDir           = "paths.raw_dir"
	keyOutputDir        = "paths.output_dir"
	keyLinksDir         = "paths.links_dir"
	keyDataDir          = "paths.data_dir"
	keyBaseURL          = "scrape.base_url"
	keyUserAgent        = "scrape.user_agent"
	keyTimeout          = "scrape.timeout_seconds"
	keyFormType         = "scrape.form_type"
	keyOutputFormat     = "output.format"
	keyOverwrite        = "output.overwrite"
	keyCatalog          = "output.catalog"
	keyCategory         = "processors.category"
	keyDetailedCategory = "processors.detailed_category"
	keyRoutes           = "routes.rules"
)

// routeSeparator splits a stored "keyword=target" rule.
const routeSeparator = "="

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Paths: domain.PathSettings{
			RawDir:    s.getString(keyRawDir, defaults.Paths.RawDir),
			OutputDir: s.getString(keyOutputDir, defaults.Paths.OutputDir),
			LinksDir:  s.getString(keyLinksDir, defaults.Paths.LinksDir),
			DataDir:   s.configStore.GetString(keyDataDir), // Empty means the config directory's data/
		},
		Scrape: domain.ScrapeSettings{
			BaseURL:   s.getString(keyBaseURL, defaults.Scrape.BaseURL),
			UserAgent: s.getString(keyUserAgent, defaults.Scrape.UserAgent),
			Timeout:   s.getTimeout(defaults.Scrape.Timeout),
			FormType:  s.getString(keyFormType, defaults.Scrape.FormType),
		},
		Output: domain.OutputSettings{
			Format:    s.getOutputFormat(defaults.Output.Format),
			Overwrite: s.getOverwritePolicy(defaults.Output.Overwrite),
			Catalog:   s.getBool(keyCatalog, defaults.Output.Catalog),
		},
		Processors: domain.ProcessorSettings{
			Category:         s.getBool(keyCategory, defaults.Processors.Category),
			DetailedCategory: s.getBool(keyDetailedCategory, defaults.Processors.DetailedCategory),
		},
		Routes: s.getRoutes(defaults.Routes),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}

	for _, v := range SettingValues(settings) {
		// Data dir has no default value to store.
		if v.Key == keyDataDir && v.Value == "" {
			continue
		}
		if err := s.configStore.Set(v.Key, v.Value); err != nil {
			return fmt.Errorf("save %s: %w", v.Key, err)
		}
	}

	return nil
}

// SetOverwritePolicy updates the overwrite policy.
func (s *SettingsService) SetOverwritePolicy(policy domain.OverwritePolicy) error {
	if !policy.IsValid() {
		return fmt.Errorf("invalid overwrite policy: %s", policy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Output.Overwrite = policy

	return s.Save(settings)
}

// SetOutputFormat updates the output format.
func (s *SettingsService) SetOutputFormat(format domain.OutputFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("invalid output format: %s", format)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Output.Format = format

	return s.Save(settings)
}

// SetRoute adds a routing rule, or replaces the target of an existing rule
// with the same keyword. New rules are appended so earlier rules keep priority.
func (s *SettingsService) SetRoute(keyword, target string) error {
	keyword = strings.TrimSpace(keyword)
	target = strings.TrimSpace(target)
	if keyword == "" || target == "" {
		return fmt.Errorf("route keyword and target are required: %w", domain.ErrInvalidInput)
	}
	if strings.Contains(keyword, routeSeparator) {
		return fmt.Errorf("route keyword %q must not contain %q: %w", keyword, routeSeparator, domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	replaced := false
	for i, rule := range settings.Routes {
		if strings.EqualFold(rule.Keyword, keyword) {
			settings.Routes[i].Target = target
			replaced = true
			break
		}
	}
	if !replaced {
		settings.Routes = append(settings.Routes, domain.RouteRule{Keyword: keyword, Target: target})
	}

	return s.Save(settings)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Output.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", settings.Output.Format)
	}
	if !settings.Output.Overwrite.IsValid() {
		return fmt.Errorf("invalid overwrite policy: %s", settings.Output.Overwrite)
	}
	if settings.Scrape.Timeout <= 0 {
		return fmt.Errorf("scrape timeout must be positive, got %s", settings.Scrape.Timeout)
	}
	if len(settings.Routes) == 0 {
		return fmt.Errorf("at least one route is required: %w", domain.ErrNoRoute)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// KeyValue is one setting under its config key.
type KeyValue struct {
	Key   string
	Value any
}

// SettingValues flattens settings into config keys, in display order.
// Values have the types stored in the config file: string, int, bool
// or []string.
func SettingValues(settings *domain.Settings) []KeyValue {
	return []KeyValue{
		{keyRawDir, settings.Paths.RawDir},
		{keyOutputDir, settings.Paths.OutputDir},
		{keyLinksDir, settings.Paths.LinksDir},
		{keyDataDir, settings.Paths.DataDir},
		{keyBaseURL, settings.Scrape.BaseURL},
		{keyUserAgent, settings.Scrape.UserAgent},
		{keyTimeout, int(settings.Scrape.Timeout / time.Second)},
		{keyFormType, settings.Scrape.FormType},
		{keyOutputFormat, string(settings.Output.Format)},
		{keyOverwrite, settings.Output.Overwrite.String()},
		{keyCatalog, settings.Output.Catalog},
		{keyCategory, settings.Processors.Category},
		{keyDetailedCategory, settings.Processors.DetailedCategory},
		{keyRoutes, formatRoutes(settings.Routes)},
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTimeout(defaultVal time.Duration) time.Duration {
	secs := s.configStore.GetInt(keyTimeout)
	if secs <= 0 {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}

func (s *SettingsService) getOutputFormat(defaultVal domain.OutputFormat) domain.OutputFormat {
	format := domain.OutputFormat(strings.ToLower(s.configStore.GetString(keyOutputFormat)))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}

func (s *SettingsService) getOverwritePolicy(defaultVal domain.OverwritePolicy) domain.OverwritePolicy {
	policy := domain.OverwritePolicy(strings.ToLower(s.configStore.GetString(keyOverwrite)))
	if !policy.IsValid() {
		return defaultVal
	}
	return policy
}

func (s *SettingsService) getRoutes(defaultVal []domain.RouteRule) []domain.RouteRule {
	if _, exists := s.configStore.Get(keyRoutes); !exists {
		return defaultVal
	}
	routes := ParseRoutes(s.configStore.GetStringSlice(keyRoutes))
	if len(routes) == 0 {
		return defaultVal
	}
	return routes
}

// ParseRoutes reads "keyword=target" rules, skipping malformed entries.
// A rule without a target routes to a directory named after the keyword.
func ParseRoutes(rules []string) []domain.RouteRule {
	routes := make([]domain.RouteRule, 0, len(rules))
	for _, rule := range rules {
		keyword, target, found := strings.Cut(rule, routeSeparator)
		keyword = strings.TrimSpace(keyword)
		target = strings.TrimSpace(target)
		if keyword == "" {
			continue
		}
		if !found || target == "" {
			target = keyword
		}
		routes = append(routes, domain.RouteRule{Keyword: keyword, Target: target})
	}
	return routes
}

func formatRoutes(routes []domain.RouteRule) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Keyword + routeSeparator + r.Target
	}
	return out
}
