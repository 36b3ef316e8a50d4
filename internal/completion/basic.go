package completion

import (
	"context"
	"strings"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/scanner"
)

var booleanValues = []string{"true", "false"}

// resolveBasic handles string, boolean and coordinate arguments
func (r *Resolver) resolveBasic(ctx context.Context, p parseContext, variants []catalog.CommandVariant, index int, command string) (Result, bool) {
	p = p.skip()
	tok, ok := scanner.NextWord(p.line, p.tokenCursor)

	switch locate(p, tok, ok) {
	case placementBefore:
		return r.basicValues(ctx, variants, index, "", p.insertion()), true
	case placementInside:
		return r.basicValues(ctx, variants, index, tok.Text, p.span(tok)), true
	case placementNone:
		return Result{}, false
	}

	return r.advance(ctx, p, tok, variants, index, command)
}

// basicValues lists the literal candidates of every variant's argument at
// index that start with prefix
func (r *Resolver) basicValues(ctx context.Context, variants []catalog.CommandVariant, index int, prefix string, rng Range) Result {
	c := newCollector()
	for _, v := range variants {
		for _, value := range r.argumentValues(ctx, v.Arguments[index].Kind, v.Arguments[index].Data) {
			if !strings.HasPrefix(value, prefix) {
				continue
			}
			c.add(Item{Label: value, InsertText: value, Kind: KindKeyword, Range: rng})
		}
	}
	return c.result()
}

// argumentValues returns the enumerable values of an argument: literal
// values and schema-resolved values for strings, true/false for booleans
func (r *Resolver) argumentValues(ctx context.Context, kind catalog.ArgumentKind, data catalog.AdditionalData) []string {
	switch kind {
	case catalog.ArgumentString:
		values := append([]string(nil), data.Values...)
		if data.SchemaReference != "" {
			values = append(values, r.schemaValues(ctx, data.SchemaReference)...)
		}
		return values
	case catalog.ArgumentBoolean:
		return booleanValues
	case catalog.ArgumentCoordinate, catalog.ArgumentCoordinates, catalog.ArgumentSelector, catalog.ArgumentCommand,
		catalog.ArgumentSubcommand, catalog.ArgumentBlockState, catalog.ArgumentUnknown:
		return nil
	}
	return nil
}

// schemaValues performs the one asynchronous lookup of a completion pass.
// A failed lookup degrades to no values for that branch only.
func (r *Resolver) schemaValues(ctx context.Context, reference string) []string {
	if r.schemas == nil {
		return nil
	}

	schema, err := r.schemas.Resolve(ctx, reference)
	if err != nil {
		r.log.Warn().Str("reference", reference).Err(err).Msg("Schema lookup failed")
		return nil
	}

	return r.schemas.Enumerate(schema)
}
