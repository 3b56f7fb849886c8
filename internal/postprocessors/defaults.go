package postprocessors

import (
	"github.com/custodia-labs/holdings-cli/internal/core/domain"
	"github.com/custodia-labs/holdings-cli/internal/core/ports/driven"
	"github.com/custodia-labs/holdings-cli/internal/postprocessors/category"
	"github.com/custodia-labs/holdings-cli/internal/postprocessors/titlenorm"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(titlenorm.Name, buildTitleNorm)
	r.Register(category.Name, buildCategory)
}

// DefaultNames returns the processors to run for the given settings.
// Categorisation runs before title normalisation so both read raw titles.
func DefaultNames(settings domain.ProcessorSettings) []string {
	if settings.Category {
		return []string{category.Name, titlenorm.Name}
	}
	return []string{titlenorm.Name}
}

// DefaultConfigs returns per-processor config derived from settings.
func DefaultConfigs(settings domain.ProcessorSettings) map[string]map[string]any {
	return map[string]map[string]any{
		category.Name: {"detailed": settings.DetailedCategory},
	}
}

// buildTitleNorm creates a title normaliser from generic config.
// Supported config keys:
//   - column (string): Column to read (default: class_title)
//   - output (string): Column to write (default: in place)
func buildTitleNorm(cfg map[string]any) (driven.RecordProcessor, error) {
	var opts []titlenorm.Option

	if cfg != nil {
		if col := getStringFromConfig(cfg, "column"); col != "" {
			opts = append(opts, titlenorm.WithColumn(col))
		}
		if out := getStringFromConfig(cfg, "output"); out != "" {
			opts = append(opts, titlenorm.WithOutput(out))
		}
	}

	return titlenorm.New(opts...), nil
}

// buildCategory creates a category classifier from generic config.
// Supported config keys:
//   - detailed (bool): Use the detailed taxonomy (default: false)
//   - output (string): Column to write (default: class_category)
func buildCategory(cfg map[string]any) (driven.RecordProcessor, error) {
	var opts []category.Option

	if cfg != nil {
		if detailed, ok := cfg["detailed"].(bool); ok && detailed {
			opts = append(opts, category.WithDetailed())
		}
		if out := getStringFromConfig(cfg, "output"); out != "" {
			opts = append(opts, category.WithOutput(out))
		}
	}

	return category.New(opts...), nil
}

// getStringFromConfig safely extracts a string from generic config map.
func getStringFromConfig(cfg map[string]any, key string) string {
	if v, ok := cfg[key].(string); ok {
		return v
	}
	return ""
}
