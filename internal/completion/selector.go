package completion

import (
	"context"
	"strings"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/scanner"
)

// SelectorKinds are the target selector literals, in suggestion order
var SelectorKinds = []string{"@p", "@r", "@a", "@e", "@s", "@initiator"}

var operators = []string{scanner.OperatorEquals, scanner.OperatorNotEquals}

func (r *Resolver) resolveSelector(ctx context.Context, p parseContext, variants []catalog.CommandVariant, index int, command string) (Result, bool) {
	p = p.skip()
	tok, ok := scanner.NextSelector(p.line, p.tokenCursor)

	switch locate(p, tok, ok) {
	case placementBefore:
		return selectorKinds("", p.insertion()), true
	case placementInside:
		return r.resolveSelectorBody(ctx, p, tok)
	case placementNone:
		return Result{}, false
	}

	return r.advance(ctx, p, tok, variants, index, command)
}

// resolveSelectorBody handles a cursor inside a selector token: either in
// the sigil and kind, or somewhere in the bracketed argument group
func (r *Resolver) resolveSelectorBody(ctx context.Context, p parseContext, tok scanner.Token) (Result, bool) {
	head := selectorHead(tok)
	if p.cursor <= head.End() {
		return selectorKinds(head.Text, p.span(head)), true
	}

	open := head.End()
	if open >= len(p.line) || p.line[open] != '[' {
		return Result{}, false
	}
	if tok.Closed() && p.cursor == tok.End() {
		return Result{}, false
	}

	return r.resolveSelectorArguments(ctx, p.at(open+1))
}

// selectorHead returns the '@' and selector kind prefix of tok
func selectorHead(tok scanner.Token) scanner.Token {
	end := 1
	for end < len(tok.Text) && tok.Text[end] >= 'a' && tok.Text[end] <= 'z' {
		end++
	}
	return scanner.Token{Text: tok.Text[:end], Start: tok.Start}
}

func selectorKinds(prefix string, rng Range) Result {
	c := newCollector()
	for _, kind := range SelectorKinds {
		if strings.HasPrefix(kind, prefix) {
			c.add(Item{Label: kind, InsertText: kind, Kind: KindKeyword, Range: rng})
		}
	}
	return c.result()
}

// resolveSelectorArguments resolves one key=value pair of a selector
// argument group and recurses past a trailing comma
func (r *Resolver) resolveSelectorArguments(ctx context.Context, p parseContext) (Result, bool) {
	p = p.skip()
	key, ok := scanner.NextSelectorArgumentKey(p.line, p.tokenCursor)

	switch locate(p, key, ok) {
	case placementBefore:
		return r.selectorKeys("", p.insertion()), true
	case placementInside:
		return r.selectorKeys(key.Text, p.span(key)), true
	case placementNone:
		return Result{}, false
	}

	def, known := r.selectorArgument(key.Text)

	p = p.at(key.End()).skip()
	op, ok := scanner.NextSelectorOperator(p.line, p.tokenCursor)

	switch {
	case p.cursor <= p.tokenCursor:
		return operatorItems("", p.insertion()), true
	case !ok:
		return Result{}, false
	case p.cursor < op.End():
		return operatorItems(p.line[op.Start:p.cursor], p.span(op)), true
	}

	p = p.at(op.End()).skip()
	value, ok := scanner.NextSelectorValue(p.line, p.tokenCursor)

	switch locate(p, value, ok) {
	case placementBefore:
		return r.selectorValues(ctx, def, known, "", p.insertion())
	case placementInside:
		return r.selectorValues(ctx, def, known, value.Text, p.span(value))
	case placementNone:
		return Result{}, false
	}

	next := scanner.SkipSpaces(p.line, value.End())
	if next >= len(p.line) || p.line[next] != ',' {
		return Result{}, false
	}

	return r.resolveSelectorArguments(ctx, p.at(next+1))
}

func (r *Resolver) selectorArgument(name string) (catalog.SelectorArgumentDef, bool) {
	for _, def := range r.catalog.ListSelectorArguments() {
		if def.Name == name {
			return def, true
		}
	}
	return catalog.SelectorArgumentDef{}, false
}

func (r *Resolver) selectorKeys(prefix string, rng Range) Result {
	c := newCollector()
	for _, def := range r.catalog.ListSelectorArguments() {
		if strings.HasPrefix(def.Name, prefix) {
			c.add(Item{Label: def.Name, InsertText: def.Name, Kind: KindKeyword, Range: rng})
		}
	}
	return c.result()
}

func operatorItems(prefix string, rng Range) Result {
	c := newCollector()
	for _, op := range operators {
		if strings.HasPrefix(op, prefix) {
			c.add(Item{Label: op, InsertText: op, Kind: KindOperator, Range: rng})
		}
	}
	return c.result()
}

// selectorValues offers the values of a selector argument. Keys without a
// definition, or whose type enumerates nothing, have no completions.
func (r *Resolver) selectorValues(ctx context.Context, def catalog.SelectorArgumentDef, known bool, prefix string, rng Range) (Result, bool) {
	if !known || (def.Kind != catalog.ArgumentString && def.Kind != catalog.ArgumentBoolean) {
		return Result{}, false
	}

	c := newCollector()
	for _, value := range r.argumentValues(ctx, def.Kind, def.Data) {
		if strings.HasPrefix(value, prefix) {
			c.add(Item{Label: value, InsertText: value, Kind: KindKeyword, Range: rng})
		}
	}
	return c.result(), true
}
