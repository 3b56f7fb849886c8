package driven

// ConfigStore holds the settings persisted in config.toml. Keys are dotted
// names whose first segment is the TOML table, for example
// "output.format" or "scrape.user_agent".
//
// Typed getters return the zero value when a key is missing or holds a
// different type.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string

	// Set stores value and persists the file.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is where the settings are persisted.
	Path() string
}
