package driving

import "github.com/custodia-labs/galley/internal/core/domain"

// SettingsService reads and writes application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set stores a single configuration value by key.
	Set(key, value string) error

	// Keys returns the known configuration keys.
	Keys() []string
}
