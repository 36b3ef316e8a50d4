//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// SchemaConfig mirrors config.Config for schema generation
type SchemaConfig struct {
	LogLevel   string `json:"log_level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=warning,enum=error,enum=fatal,enum=panic,description=Minimum level of log messages written to stderr,default=warn"`
	Catalog    string `json:"catalog,omitempty" jsonschema:"minLength=1,description=Path to a command catalog file (yaml or toml or json) relative to this file"`
	Schemas    string `json:"schemas,omitempty" jsonschema:"minLength=1,description=Directory of JSON schema documents referenced by the catalog"`
	LineNumber int    `json:"line_number,omitempty" jsonschema:"minimum=1,description=Line number reported in completion ranges,default=1"`
	Format     string `json:"format,omitempty" jsonschema:"description=Go template rendering each completion item (sprig functions available)"`
}

func main() {
	r := &jsonschema.Reflector{
		DoNotReference:             false,
		ExpandedStruct:             false,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&SchemaConfig{})

	// Use draft-07 for IDE compatibility
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.ID = "https://raw.githubusercontent.com/NikitaCOEUR/mcfunction/main/schema/mcfunction.schema.json"
	schema.Title = "mcfunction Configuration"
	schema.Description = "Settings for the mcfunction completion tool"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling schema: %v\n", err)
		os.Exit(1)
	}

	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schema: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema generated: %s\n", outputPath)
}
