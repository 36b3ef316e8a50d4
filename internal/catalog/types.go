// Package catalog holds the read-only command and selector-argument
// definitions the completion resolver works against.
package catalog

// ArgumentKind is the closed set of argument types a command can declare
type ArgumentKind int

const (
	// ArgumentUnknown is any type string the catalog did not recognise.
	ArgumentUnknown ArgumentKind = iota
	ArgumentString
	ArgumentBoolean
	ArgumentCoordinate
	ArgumentSelector
	ArgumentCommand
	ArgumentSubcommand
	ArgumentBlockState
	// ArgumentCoordinates is an x y z triple, expanded into three
	// ArgumentCoordinate slots before resolution.
	ArgumentCoordinates
)

var kindNames = map[ArgumentKind]string{
	ArgumentUnknown:     "unknown",
	ArgumentString:      "string",
	ArgumentBoolean:     "boolean",
	ArgumentCoordinate:  "coordinate",
	ArgumentSelector:    "selector",
	ArgumentCommand:     "command",
	ArgumentSubcommand:  "subcommand",
	ArgumentBlockState:  "blockState",
	ArgumentCoordinates: "$coordinates",
}

// String returns the catalog spelling of the kind
func (k ArgumentKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseArgumentKind maps a catalog type string to its kind.
// "coordinate" is a single coordinate, "$coordinates" a triple.
func ParseArgumentKind(s string) ArgumentKind {
	switch s {
	case "string":
		return ArgumentString
	case "boolean":
		return ArgumentBoolean
	case "coordinate":
		return ArgumentCoordinate
	case "$coordinates":
		return ArgumentCoordinates
	case "selector":
		return ArgumentSelector
	case "command":
		return ArgumentCommand
	case "subcommand":
		return ArgumentSubcommand
	case "blockState":
		return ArgumentBlockState
	default:
		return ArgumentUnknown
	}
}

// AdditionalData narrows the accepted values of a string argument. Values
// lists literals; SchemaReference points into the schema store.
type AdditionalData struct {
	Values          []string
	SchemaReference string
}

func (d AdditionalData) clone() AdditionalData {
	if d.Values != nil {
		d.Values = append([]string(nil), d.Values...)
	}
	return d
}

// ArgumentType is one positional argument of a command variant
type ArgumentType struct {
	Name          string
	Kind          ArgumentKind
	AllowMultiple bool
	Data          AdditionalData
}

// Clone returns a structural copy sharing no memory with a
func (a ArgumentType) Clone() ArgumentType {
	a.Data = a.Data.clone()
	return a
}

// CloneArguments deep-copies an argument list
func CloneArguments(args []ArgumentType) []ArgumentType {
	if args == nil {
		return nil
	}
	out := make([]ArgumentType, len(args))
	for i, arg := range args {
		out[i] = arg.Clone()
	}
	return out
}

// CommandVariant is one overload of a command
type CommandVariant struct {
	Name        string
	Description string
	Arguments   []ArgumentType
}

// Clone returns a structural copy of the variant
func (v CommandVariant) Clone() CommandVariant {
	v.Arguments = CloneArguments(v.Arguments)
	return v
}

// SubcommandGroup lists the subcommands available to a parent command
type SubcommandGroup struct {
	CommandName string
	Commands    []CommandVariant
}

// SelectorArgumentDef describes one key of the @selector[key=value] grammar
type SelectorArgumentDef struct {
	Name string
	Kind ArgumentKind
	Data AdditionalData
}
