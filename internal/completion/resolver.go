package completion

import (
	"context"
	"strings"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/logger"
	"github.com/NikitaCOEUR/mcfunction/internal/scanner"
	"github.com/NikitaCOEUR/mcfunction/internal/timing"
	"github.com/NikitaCOEUR/mcfunction/internal/trace"
)

// Resolver computes completions against one catalog snapshot. It keeps no
// state between calls and is safe for concurrent use.
type Resolver struct {
	catalog Catalog
	schemas SchemaStore
	log     *logger.Logger
}

// NewResolver creates a resolver. schemas may be nil, in which case schema
// references resolve to no values.
func NewResolver(cat Catalog, schemas SchemaStore, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{catalog: cat, schemas: schemas, log: log}
}

// parseContext is the immutable state threaded through one grammar level.
// Levels derive new contexts with at instead of mutating a shared cursor.
type parseContext struct {
	line        string
	lineNumber  int
	cursor      int
	tokenCursor int
}

func (p parseContext) at(tokenCursor int) parseContext {
	p.tokenCursor = tokenCursor
	return p
}

// skip returns the context advanced over spaces from its token cursor
func (p parseContext) skip() parseContext {
	return p.at(scanner.SkipSpaces(p.line, p.tokenCursor))
}

// insertion is the zero-width range at the cursor
func (p parseContext) insertion() Range {
	return Range{
		StartLine:   p.lineNumber,
		StartColumn: p.cursor + 1,
		EndLine:     p.lineNumber,
		EndColumn:   p.cursor + 1,
	}
}

// span is the range covering tok exactly
func (p parseContext) span(tok scanner.Token) Range {
	return Range{
		StartLine:   p.lineNumber,
		StartColumn: tok.Start + 1,
		EndLine:     p.lineNumber,
		EndColumn:   tok.End() + 1,
	}
}

// placement is where the cursor sits relative to the next token
type placement int

const (
	placementBefore placement = iota
	placementInside
	placementPast
	placementNone
)

var placementNames = [...]string{"before", "inside", "past", "none"}

func (pl placement) String() string {
	return placementNames[pl]
}

// locate applies the before/inside/past rule shared by every grammar level.
// p.tokenCursor must already be past any leading spaces.
func locate(p parseContext, tok scanner.Token, ok bool) placement {
	switch {
	case p.cursor < p.tokenCursor || (p.cursor == p.tokenCursor && !ok):
		return placementBefore
	case ok && p.cursor <= tok.End():
		return placementInside
	case !ok:
		return placementNone
	default:
		return placementPast
	}
}

// Resolve returns the completions for cursor on line, reported on line 1.
// The boolean is false when no grammar production applies at the cursor.
func (r *Resolver) Resolve(ctx context.Context, line string, cursor int) (Result, bool) {
	return r.ResolveAt(ctx, 1, line, cursor)
}

// ResolveAt is Resolve with an explicit line number for the returned ranges
func (r *Resolver) ResolveAt(ctx context.Context, lineNumber int, line string, cursor int) (Result, bool) {
	defer trace.Region(ctx, "completion.Resolve")()
	timer := timing.NewTimer()

	if cursor < 0 || cursor > len(line) {
		r.log.Debug().Int("cursor", cursor).Int("length", len(line)).Msg("Cursor outside line")
		return Result{}, false
	}

	p := parseContext{line: line, lineNumber: lineNumber, cursor: cursor}
	result, ok := r.resolveCommand(ctx, p)
	timer.Mark("resolve")

	r.log.Debug().
		Str("line", line).
		Int("cursor", cursor).
		Bool("ok", ok).
		Int("items", len(result.Items)).
		Str("timing", timer.Summary()).
		Msg("Resolved completions")

	return result, ok
}

// ResolveCommand resolves a command name position starting at offset 0
func (r *Resolver) ResolveCommand(ctx context.Context, line string, cursor int) (Result, bool) {
	return r.resolveCommand(ctx, parseContext{line: line, lineNumber: 1, cursor: cursor})
}

func (r *Resolver) resolveCommand(ctx context.Context, p parseContext) (Result, bool) {
	p = p.skip()
	tok, ok := scanner.NextWord(p.line, p.tokenCursor)

	switch locate(p, tok, ok) {
	case placementBefore:
		return r.commandNames("", p.insertion()), true
	case placementInside:
		return r.commandNames(tok.Text, p.span(tok)), true
	case placementNone:
		return Result{}, false
	}

	var variants []catalog.CommandVariant
	for _, cmd := range r.catalog.ListCommands() {
		if cmd.Name != tok.Text {
			continue
		}
		variant := cmd.Clone()
		variant.Arguments = expandCoordinates(variant.Arguments)
		variants = append(variants, variant)
	}

	if len(variants) == 0 {
		r.log.Debug().Str("command", tok.Text).Msg("Unknown command")
		return Result{}, false
	}

	return r.resolveArgument(ctx, p.at(tok.End()), variants, 0, tok.Text)
}

// commandNames lists distinct command names starting with prefix
func (r *Resolver) commandNames(prefix string, rng Range) Result {
	c := newCollector()
	for _, cmd := range r.catalog.ListCommands() {
		if !strings.HasPrefix(cmd.Name, prefix) {
			continue
		}
		c.add(Item{
			Label:      cmd.Name,
			InsertText: cmd.Name,
			Detail:     cmd.Description,
			Kind:       KindKeyword,
			Range:      rng,
		})
	}
	return c.result()
}

// expandCoordinates replaces every coordinate triple with three single
// coordinate arguments. args is modified only through a fresh slice.
func expandCoordinates(args []catalog.ArgumentType) []catalog.ArgumentType {
	out := make([]catalog.ArgumentType, 0, len(args))
	for _, arg := range args {
		if arg.Kind != catalog.ArgumentCoordinates {
			out = append(out, arg)
			continue
		}
		for i := 0; i < 3; i++ {
			single := arg.Clone()
			single.Kind = catalog.ArgumentCoordinate
			out = append(out, single)
		}
	}
	return out
}
