package config

import (
	"fmt"
	"slices"
)

var (
	colorModes  = []string{"auto", "always", "never"}
	formats     = []string{"pretty", "json"}
	wrapModes   = []string{"auto", "character", "never"}
	pagingModes = []string{"auto", "always", "never"}
	logLevels   = []string{"debug", "info", "warn", "error"}
	logFormats  = []string{"text", "json"}
)

// ValidateConfig checks enum-valued settings after defaults are applied
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"color", config.Color, colorModes},
		{"format", config.Format, formats},
		{"print.wrap", config.Print.Wrap, wrapModes},
		{"print.paging", config.Print.Paging, pagingModes},
		{"log.level", config.Log.Level, logLevels},
		{"log.format", config.Log.Format, logFormats},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return fmt.Errorf("invalid %s %q: must be one of %v", c.key, c.value, c.allowed)
		}
	}

	if config.Print.Theme == "" {
		return fmt.Errorf("print.theme is required")
	}
	return nil
}
