package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/config"
)

// SchemaParams contains parameters for the Schema command
type SchemaParams struct {
	OutputPath string    // file to write, stdout when empty
	Config     bool      // export the configuration schema instead of the catalog schema
	Output     io.Writer // stdout when nil
}

// Schema displays or exports the JSON Schema for catalog or configuration files
func Schema(params SchemaParams) error {
	w := params.Output
	if w == nil {
		w = os.Stdout
	}

	schemaJSON := catalog.GetSchemaJSON()
	if params.Config {
		schemaJSON = config.GetSchemaJSON()
	}

	// If output path is provided, write to file
	if params.OutputPath != "" {
		if err := os.WriteFile(params.OutputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", params.OutputPath, err)
		}
		fmt.Fprintf(w, "JSON Schema written to: %s\n", params.OutputPath)
		return nil
	}

	_, err := fmt.Fprintln(w, schemaJSON)
	return err
}
