package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/config"
	"github.com/NikitaCOEUR/mcfunction/internal/derrors"
)

// ValidateParams contains parameters for the Validate command
type ValidateParams struct {
	Common
	Path   string // file to validate, found from the configuration when empty
	Config bool   // validate a configuration file instead of a catalog
}

type validationLine struct {
	Field   string
	Message string
}

// Validate validates a catalog file, or a configuration file with Config set
func Validate(params ValidateParams) error {
	if params.Config {
		return validateConfig(params)
	}
	return validateCatalog(params)
}

func validateCatalog(params ValidateParams) error {
	w := params.out()
	path := params.Path

	if path == "" {
		cfg, err := configOnly(params.Common)
		if err != nil {
			return err
		}
		path = cfg.Catalog
	}

	if path == "" {
		fmt.Fprintln(w, "No catalog configured, validating the built-in catalog")
		result, err := catalog.ValidateWithSchema("default.json", catalog.DefaultJSON())
		if err != nil {
			return err
		}
		return report(w, "Catalog", result.Valid, catalogLines(result))
	}

	fmt.Fprintf(w, "Validating: %s\n\n", path)

	result, err := catalog.Validate(path)
	if err != nil {
		return err
	}
	return report(w, "Catalog", result.Valid, catalogLines(result))
}

func validateConfig(params ValidateParams) error {
	w := params.out()
	path := params.Path

	// If no path provided, look for config in the working directory
	if path == "" {
		dir, err := resolveDir(params.Dir)
		if err != nil {
			return err
		}
		for _, name := range config.SupportedConfigNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return fmt.Errorf("no config file found in %s", dir)
		}
	}

	fmt.Fprintf(w, "Validating: %s\n\n", path)

	result, err := config.Validate(path)
	if err != nil {
		return err
	}

	lines := make([]validationLine, 0, len(result.Errors))
	for _, e := range result.Errors {
		lines = append(lines, validationLine{Field: e.Field, Message: e.Message})
	}
	return report(w, "Configuration", result.Valid, lines)
}

// configOnly resolves the merged configuration without loading the catalog
func configOnly(common Common) (*config.Config, error) {
	dir, err := resolveDir(common.Dir)
	if err != nil {
		return nil, err
	}
	cfg, _, err := config.New().LoadHierarchy(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config.Merge(cfg, &config.Config{Catalog: common.Catalog, Schemas: common.Schemas}), nil
}

func catalogLines(result *catalog.ValidationResult) []validationLine {
	lines := make([]validationLine, 0, len(result.Errors))
	for _, e := range result.Errors {
		lines = append(lines, validationLine{Field: e.Field, Message: e.Message})
	}
	return lines
}

func report(w io.Writer, what string, valid bool, lines []validationLine) error {
	if valid {
		fmt.Fprintf(w, "✅ %s is valid!\n", what)
		return nil
	}

	fmt.Fprintf(w, "❌ %s has errors:\n", what)
	for i, line := range lines {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, line.Field, line.Message)
	}

	fmt.Fprintf(w, "\nFound %d error(s)\n", len(lines))

	// Return non-zero exit code
	field := ""
	if len(lines) > 0 {
		field = lines[0].Field
	}
	return derrors.NewValidationError(field, "validation failed", nil)
}
