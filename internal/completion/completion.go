// Package completion resolves context-sensitive completions for a single
// mcfunction line.
//
// Resolution is a recursive descent driven purely by the cursor offset. At
// every grammar level (command name, argument, selector key, operator,
// value, block state) the cursor is either before the next token, inside
// it, or past it. Before and inside are terminal and produce candidates;
// past validates the token and descends one level with an advanced cursor.
package completion

import (
	"context"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/schemastore"
)

// Kind classifies a completion item for the host's presentation
type Kind int

const (
	KindKeyword Kind = iota
	KindOperator
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	if k == KindOperator {
		return "operator"
	}
	return "keyword"
}

// Range is the span of the line an item replaces. Columns are 1-based and
// EndColumn is exclusive, so a zero-width insertion has StartColumn == EndColumn.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Empty reports whether the range is a zero-width insertion point
func (r Range) Empty() bool {
	return r.StartLine == r.EndLine && r.StartColumn == r.EndColumn
}

// Item is a single completion candidate
type Item struct {
	Label      string
	InsertText string
	Detail     string
	Kind       Kind
	Range      Range
}

// Result is an ordered list of items with unique labels. A resolved but
// empty Result is distinct from "no completions apply", which resolver
// methods report through their boolean return.
type Result struct {
	Items []Item
}

// Labels returns the item labels in order
func (r Result) Labels() []string {
	labels := make([]string, len(r.Items))
	for i, item := range r.Items {
		labels[i] = item.Label
	}
	return labels
}

// Catalog is the read-only command data the resolver consumes
type Catalog interface {
	ListCommands() []catalog.CommandVariant
	ListSelectorArguments() []catalog.SelectorArgumentDef
	ListSubcommands(name string) []catalog.CommandVariant
}

// SchemaStore resolves schema references to enumerable value sets
type SchemaStore interface {
	Resolve(ctx context.Context, reference string) (*schemastore.Schema, error)
	Enumerate(schema *schemastore.Schema) []string
}

// collector accumulates items, keeping the first item for each label
type collector struct {
	seen  map[string]bool
	items []Item
}

func newCollector() *collector {
	return &collector{seen: make(map[string]bool), items: []Item{}}
}

func (c *collector) add(items ...Item) {
	for _, item := range items {
		if c.seen[item.Label] {
			continue
		}
		c.seen[item.Label] = true
		c.items = append(c.items, item)
	}
}

func (c *collector) result() Result {
	return Result{Items: c.items}
}
