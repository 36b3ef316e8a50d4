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

// DefaultCatalogName is the file the built-in catalog is exported to
const DefaultCatalogName = "commands.json"

const sampleConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/NikitaCOEUR/mcfunction/main/schema/mcfunction.schema.json
# mcfunction configuration file

# Minimum level of log messages written to stderr
# log_level: warn

# Command catalog (json, yaml or toml), relative to this file.
# The built-in catalog is used when unset.
%s

# Directory of JSON schema documents referenced by schemaReference entries
# schemas: schemas

# Line number reported in completion ranges
# line_number: 1

# Go template rendering each completion item (sprig functions available)
# format: '{{ .Label }}{{ if .Detail }} ({{ .Detail }}){{ end }}'
`

// InitParams contains parameters for the Init command
type InitParams struct {
	Dir           string    // cwd when empty
	Global        bool      // create the global config instead of a local one
	ExportCatalog bool      // also write the built-in catalog next to the config
	Output        io.Writer // stdout when nil
}

// Init creates a sample .mcfunction.yml config file in a directory or the global config
func Init(params InitParams) error {
	w := params.Output
	if w == nil {
		w = os.Stdout
	}

	var configPath string

	if params.Global {
		globalPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return derrors.NewConfigurationError("", "failed to get global config path", err)
		}
		configPath = globalPath

		// Create directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return derrors.NewConfigurationError(configPath, "failed to create config directory", err)
		}
	} else {
		dir, err := resolveDir(params.Dir)
		if err != nil {
			return err
		}
		configPath = filepath.Join(dir, config.SupportedConfigNames[0])
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		return derrors.NewAlreadyExistsError(configPath, fmt.Sprintf("config file already exists: %s", configPath))
	}

	catalogLine := "# catalog: " + DefaultCatalogName
	if params.ExportCatalog {
		catalogPath := filepath.Join(filepath.Dir(configPath), DefaultCatalogName)
		if _, err := os.Stat(catalogPath); err == nil {
			return derrors.NewAlreadyExistsError(catalogPath, fmt.Sprintf("catalog file already exists: %s", catalogPath))
		}
		if err := os.WriteFile(catalogPath, catalog.DefaultJSON(), 0644); err != nil {
			return derrors.NewCatalogError(catalogPath, "failed to export catalog", err)
		}
		fmt.Fprintf(w, "Exported built-in catalog: %s\n", catalogPath)
		catalogLine = "catalog: " + DefaultCatalogName
	}

	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(sampleConfig, catalogLine)), 0644); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to create config file", err)
	}

	if params.Global {
		fmt.Fprintf(w, "Created global config: %s\n", configPath)
		fmt.Fprintln(w, "\nThe global config is applied before every project config.")
	} else {
		fmt.Fprintf(w, "Created sample config: %s\n", configPath)
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Edit the config file to suit your needs")
	fmt.Fprintln(w, "  2. Run 'mcfunction validate --config' to check it")
	fmt.Fprintln(w, "  3. Run 'mcfunction status' to see what is in effect")

	return nil
}
