package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the server cannot run without is
// present. The Spoonacular API key is deliberately not required: the merge
// path degrades to local-only results when upstream calls fail.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := []struct {
		name  string
		value string
	}{
		{"DB_USER", cfg.DBUser},
		{"DB_NAME", cfg.DBName},
		{"JWT_SECRET", cfg.JWTSecret},
	}
	for _, r := range required {
		if r.value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", r.name))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
