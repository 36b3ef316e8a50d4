package completion

import (
	"context"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/scanner"
)

// resolveBlockState never completes inside a block-state group. A fully
// typed group only advances the argument index.
func (r *Resolver) resolveBlockState(ctx context.Context, p parseContext, variants []catalog.CommandVariant, index int, command string) (Result, bool) {
	p = p.skip()
	tok, ok := scanner.NextBlockState(p.line, p.tokenCursor)

	if locate(p, tok, ok) != placementPast {
		return Result{}, false
	}

	return r.advance(ctx, p, tok, variants, index, command)
}
