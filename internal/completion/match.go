package completion

import (
	"regexp"
	"slices"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/scanner"
)

var (
	booleanPattern    = regexp.MustCompile(`^(true|false)$`)
	selectorPattern   = regexp.MustCompile(`^@(a|e|r|s|p|initiator)`)
	coordinatePattern = regexp.MustCompile(`^[~^]?(-?(\d*\.\d+|\d+))?$`)
)

// MatchArgument reports whether a completed token is acceptable for arg.
// It has no notion of partial validity and depends only on its inputs.
func MatchArgument(tok scanner.Token, arg catalog.ArgumentType) bool {
	switch arg.Kind {
	case catalog.ArgumentString:
		if len(arg.Data.Values) > 0 {
			return slices.Contains(arg.Data.Values, tok.Text)
		}
		return true
	case catalog.ArgumentBoolean:
		return booleanPattern.MatchString(tok.Text)
	case catalog.ArgumentSelector:
		return selectorPattern.MatchString(tok.Text)
	case catalog.ArgumentCoordinate, catalog.ArgumentCoordinates:
		return coordinatePattern.MatchString(tok.Text)
	case catalog.ArgumentBlockState:
		return tok.Closed()
	case catalog.ArgumentCommand, catalog.ArgumentSubcommand, catalog.ArgumentUnknown:
		return false
	}
	return false
}
