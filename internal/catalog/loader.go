package catalog

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/mcfunction/internal/derrors"
)

//go:embed default.json
var defaultCatalogJSON []byte

// SupportedExtensions lists the catalog file formats Load understands
var SupportedExtensions = []string{".json", ".yml", ".yaml", ".toml"}

type additionalDataDocument struct {
	Values          []string `koanf:"values"`
	SchemaReference string   `koanf:"schemaReference"`
}

type argumentDocument struct {
	ArgumentName   string                  `koanf:"argumentName"`
	Type           string                  `koanf:"type"`
	AllowMultiple  bool                    `koanf:"allowMultiple"`
	AdditionalData *additionalDataDocument `koanf:"additionalData"`
}

type commandDocument struct {
	CommandName string             `koanf:"commandName"`
	Description string             `koanf:"description"`
	Arguments   []argumentDocument `koanf:"arguments"`
}

type subcommandDocument struct {
	CommandName string            `koanf:"commandName"`
	Commands    []commandDocument `koanf:"commands"`
}

type selectorArgumentDocument struct {
	ArgumentName   string                  `koanf:"argumentName"`
	Type           string                  `koanf:"type"`
	AdditionalData *additionalDataDocument `koanf:"additionalData"`
}

type document struct {
	Commands          []commandDocument          `koanf:"commands"`
	Subcommands       []subcommandDocument       `koanf:"subcommands"`
	SelectorArguments []selectorArgumentDocument `koanf:"selectorArguments"`
}

// parserFor returns the koanf parser matching a file extension or format name
func parserFor(format string) (koanf.Parser, error) {
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yml", "yaml":
		return yaml.Parser(), nil
	case "toml":
		return toml.Parser(), nil
	case "json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", format)
	}
}

// Load reads a catalog file. The format is chosen from the file extension.
func Load(path string) (*Catalog, error) {
	parser, err := parserFor(filepath.Ext(path))
	if err != nil {
		return nil, derrors.NewCatalogError(path, "cannot load catalog", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewCatalogError(path, "failed to load catalog", err)
	}

	return decode(path, k)
}

// LoadBytes parses an in-memory catalog in the given format (json, yaml or toml)
func LoadBytes(data []byte, format string) (*Catalog, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, derrors.NewCatalogError("<bytes>", "cannot load catalog", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, derrors.NewCatalogError("<bytes>", "failed to parse catalog", err)
	}

	return decode("<bytes>", k)
}

// Default returns the built-in catalog shipped with the binary
func Default() (*Catalog, error) {
	return LoadBytes(defaultCatalogJSON, "json")
}

// DefaultJSON returns the raw built-in catalog document
func DefaultJSON() []byte {
	return defaultCatalogJSON
}

func decode(source string, k *koanf.Koanf) (*Catalog, error) {
	var doc document
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, derrors.NewCatalogError(source, "failed to decode catalog", err)
	}

	commands := make([]CommandVariant, 0, len(doc.Commands))
	for _, cmd := range doc.Commands {
		commands = append(commands, cmd.variant())
	}

	groups := make([]SubcommandGroup, 0, len(doc.Subcommands))
	for _, sub := range doc.Subcommands {
		group := SubcommandGroup{CommandName: sub.CommandName}
		for _, cmd := range sub.Commands {
			group.Commands = append(group.Commands, cmd.variant())
		}
		groups = append(groups, group)
	}

	selectorArguments := make([]SelectorArgumentDef, 0, len(doc.SelectorArguments))
	for _, arg := range doc.SelectorArguments {
		selectorArguments = append(selectorArguments, SelectorArgumentDef{
			Name: arg.ArgumentName,
			Kind: ParseArgumentKind(arg.Type),
			Data: arg.AdditionalData.data(),
		})
	}

	return New(commands, groups, selectorArguments), nil
}

func (d commandDocument) variant() CommandVariant {
	v := CommandVariant{
		Name:        d.CommandName,
		Description: d.Description,
		Arguments:   make([]ArgumentType, 0, len(d.Arguments)),
	}
	for _, arg := range d.Arguments {
		v.Arguments = append(v.Arguments, ArgumentType{
			Name:          arg.ArgumentName,
			Kind:          ParseArgumentKind(arg.Type),
			AllowMultiple: arg.AllowMultiple,
			Data:          arg.AdditionalData.data(),
		})
	}
	return v
}

func (d *additionalDataDocument) data() AdditionalData {
	if d == nil {
		return AdditionalData{}
	}
	return AdditionalData{
		Values:          d.Values,
		SchemaReference: d.SchemaReference,
	}
}

// Watch reloads the catalog at path whenever the file changes and hands the
// result to onChange. The returned function stops watching.
func Watch(path string, onChange func(*Catalog, error)) (func() error, error) {
	provider := file.Provider(path)

	err := provider.Watch(func(_ interface{}, err error) {
		if err != nil {
			onChange(nil, derrors.NewCatalogError(path, "catalog watch failed", err))
			return
		}
		onChange(Load(path))
	})
	if err != nil {
		return nil, derrors.NewCatalogError(path, "cannot watch catalog", err)
	}

	return provider.Unwatch, nil
}
