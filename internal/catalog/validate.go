package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

// GetSchemaJSON returns the JSON Schema for catalog documents
func GetSchemaJSON() string {
	return schemaJSON
}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// ValidateWithSchema validates catalog content against the JSON Schema.
// The path only selects the document format.
func ValidateWithSchema(path string, content []byte) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	var data interface{}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(content, &data); err != nil {
			result.add("syntax", fmt.Sprintf("Invalid YAML syntax: %v", err))
			return result, nil
		}
	case ".json":
		if err := json.Unmarshal(content, &data); err != nil {
			result.add("syntax", fmt.Sprintf("Invalid JSON syntax: %v", err))
			return result, nil
		}
	case ".toml":
		// TOML has no generic decoder here, go through koanf and re-marshal
		c, err := LoadBytes(content, "toml")
		if err != nil {
			result.add("syntax", fmt.Sprintf("Invalid TOML syntax: %v", err))
			return result, nil
		}
		data = encode(c)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}

	schemaLoader := gojsonschema.NewStringLoader(GetSchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validationResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if !validationResult.Valid() {
		for _, err := range validationResult.Errors() {
			result.add(err.Field(), err.Description())
		}
	}

	return result, nil
}

// Validate runs the schema check and then the semantic checks on a catalog file
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil || !result.Valid {
		return result, err
	}

	c, err := Load(path)
	if err != nil {
		result.add("syntax", err.Error())
		return result, nil
	}

	for _, cmd := range c.ListCommands() {
		checkArguments(result, "commands/"+cmd.Name, cmd.Arguments)
		for _, arg := range cmd.Arguments {
			if arg.Kind == ArgumentSubcommand && len(c.ListSubcommands(cmd.Name)) == 0 {
				result.add("commands/"+cmd.Name, "Subcommand argument declared but no subcommands are defined")
			}
		}
	}

	for parent, subs := range c.subcommands {
		for _, sub := range subs {
			checkArguments(result, "subcommands/"+parent+"/"+sub.Name, sub.Arguments)
		}
	}

	for _, def := range c.ListSelectorArguments() {
		if def.Kind == ArgumentUnknown {
			// Selector values of unknown type are accepted but never completed
			continue
		}
		if def.Kind != ArgumentString && def.Kind != ArgumentBoolean && def.Kind != ArgumentCoordinate {
			result.add("selectorArguments/"+def.Name, fmt.Sprintf("Unsupported selector argument type: %s", def.Kind))
		}
	}

	return result, nil
}

func checkArguments(result *ValidationResult, field string, args []ArgumentType) {
	for i, arg := range args {
		if arg.Kind == ArgumentUnknown {
			result.add(fmt.Sprintf("%s/%d", field, i), fmt.Sprintf("Unknown argument type for '%s'", arg.Name))
		}
		if len(arg.Data.Values) > 0 && arg.Kind != ArgumentString {
			result.add(fmt.Sprintf("%s/%d", field, i), "Enumerated values are only supported on string arguments")
		}
	}
}

// encode converts a catalog back into the generic document shape used by the schema
func encode(c *Catalog) map[string]interface{} {
	commands := make([]interface{}, 0, len(c.commands))
	for _, cmd := range c.commands {
		commands = append(commands, encodeCommand(cmd))
	}

	subcommands := make([]interface{}, 0, len(c.subcommands))
	for parent, subs := range c.subcommands {
		encoded := make([]interface{}, 0, len(subs))
		for _, sub := range subs {
			encoded = append(encoded, encodeCommand(sub))
		}
		subcommands = append(subcommands, map[string]interface{}{
			"commandName": parent,
			"commands":    encoded,
		})
	}

	selectorArguments := make([]interface{}, 0, len(c.selectorArguments))
	for _, def := range c.selectorArguments {
		selectorArguments = append(selectorArguments, map[string]interface{}{
			"argumentName":   def.Name,
			"type":           def.Kind.String(),
			"additionalData": encodeData(def.Data),
		})
	}

	return map[string]interface{}{
		"commands":          commands,
		"subcommands":       subcommands,
		"selectorArguments": selectorArguments,
	}
}

func encodeCommand(cmd CommandVariant) map[string]interface{} {
	args := make([]interface{}, 0, len(cmd.Arguments))
	for _, arg := range cmd.Arguments {
		args = append(args, map[string]interface{}{
			"argumentName":   arg.Name,
			"type":           arg.Kind.String(),
			"allowMultiple":  arg.AllowMultiple,
			"additionalData": encodeData(arg.Data),
		})
	}
	return map[string]interface{}{
		"commandName": cmd.Name,
		"description": cmd.Description,
		"arguments":   args,
	}
}

func encodeData(d AdditionalData) map[string]interface{} {
	out := map[string]interface{}{}
	if d.Values != nil {
		values := make([]interface{}, len(d.Values))
		for i, v := range d.Values {
			values[i] = v
		}
		out["values"] = values
	}
	if d.SchemaReference != "" {
		out["schemaReference"] = d.SchemaReference
	}
	return out
}
