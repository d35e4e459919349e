package backend

import (
	"fmt"
	"strings"

	"finance/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Type:          BackendType(appConfig.DataBackend),
		FinanceDBPath: appConfig.FinanceDBPath,
		UsersDBPath:   appConfig.UsersDBPath,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("backend config: %w", err)
	}
	return cfg, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return invalidTypeError(c.Type)
	}

	switch c.Type {
	case SQLiteBackend:
		if c.FinanceDBPath == "" && c.UsersDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	case MemoryBackend:
		// Memory backend needs nothing else; data lives for the process only
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{SQLiteBackend, MemoryBackend}
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	types := GetBackendTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func invalidTypeError(t BackendType) error {
	return fmt.Errorf("invalid backend type %q: must be one of %s", t, strings.Join(GetBackendTypeStrings(), ", "))
}
