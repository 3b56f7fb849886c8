package driving

import "github.com/custodia-labs/holdings-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults applied.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetOverwritePolicy updates the overwrite policy.
	SetOverwritePolicy(policy domain.OverwritePolicy) error

	// SetOutputFormat updates the output format.
	SetOutputFormat(format domain.OutputFormat) error

	// SetRoute adds or replaces a routing rule.
	SetRoute(keyword, target string) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
