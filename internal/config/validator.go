package config

import (
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/sirupsen/logrus"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate validates a config file: schema first, then the settings that
// depend on the filesystem or need parsing
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil || !result.Valid {
		return result, err
	}

	cfg, err := New().Load(path)
	if err != nil {
		result.add("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	if cfg.LogLevel != "" {
		if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
			result.add("log_level", err.Error())
		}
	}

	if cfg.Catalog != "" {
		if info, err := os.Stat(cfg.Catalog); err != nil || info.IsDir() {
			result.add("catalog", fmt.Sprintf("Catalog file not found: %s", cfg.Catalog))
		}
	}

	if cfg.Schemas != "" {
		if info, err := os.Stat(cfg.Schemas); err != nil || !info.IsDir() {
			result.add("schemas", fmt.Sprintf("Schema directory not found: %s", cfg.Schemas))
		}
	}

	if cfg.Format != "" {
		if _, err := template.New("format").Funcs(sprig.TxtFuncMap()).Parse(cfg.Format); err != nil {
			result.add("format", fmt.Sprintf("Invalid template: %v", err))
		}
	}

	return result, nil
}
