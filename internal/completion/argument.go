package completion

import (
	"context"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/scanner"
)

// ResolveArgument resolves the argument at index for the given overload set.
// tokenCursor is the offset just past the previous token; command is the
// top-level command name used to look up subcommands.
func (r *Resolver) ResolveArgument(ctx context.Context, line string, cursor, tokenCursor int, variants []catalog.CommandVariant, index int, command string) (Result, bool) {
	p := parseContext{line: line, lineNumber: 1, cursor: cursor, tokenCursor: tokenCursor}
	return r.resolveArgument(ctx, p, variants, index, command)
}

func (r *Resolver) resolveArgument(ctx context.Context, p parseContext, variants []catalog.CommandVariant, index int, command string) (Result, bool) {
	variants = expandMultiple(variants, index)
	variants = r.spliceSubcommands(variants, index, command)

	var selectors, commands, blockStates, basics []catalog.CommandVariant
	for _, v := range variants {
		if index >= len(v.Arguments) {
			continue
		}

		switch v.Arguments[index].Kind {
		case catalog.ArgumentSelector:
			selectors = append(selectors, v)
		case catalog.ArgumentCommand:
			commands = append(commands, v)
		case catalog.ArgumentBlockState:
			blockStates = append(blockStates, v)
		case catalog.ArgumentString, catalog.ArgumentBoolean, catalog.ArgumentCoordinate, catalog.ArgumentCoordinates,
			catalog.ArgumentSubcommand, catalog.ArgumentUnknown:
			basics = append(basics, v)
		}
	}

	r.log.Debug().
		Str("command", command).
		Int("index", index).
		Int("selector", len(selectors)).
		Int("command_variants", len(commands)).
		Int("block_state", len(blockStates)).
		Int("basic", len(basics)).
		Msg("Partitioned argument variants")

	c := newCollector()
	matched := false

	merge := func(res Result, ok bool) {
		if !ok {
			return
		}
		matched = true
		c.add(res.Items...)
	}

	if len(basics) > 0 {
		merge(r.resolveBasic(ctx, p, basics, index, command))
	}
	if len(selectors) > 0 {
		merge(r.resolveSelector(ctx, p, selectors, index, command))
	}
	if len(commands) > 0 {
		merge(r.resolveCommand(ctx, p))
	}
	if len(blockStates) > 0 {
		merge(r.resolveBlockState(ctx, p, blockStates, index, command))
	}

	if !matched {
		return Result{}, false
	}
	return c.result(), true
}

// advance keeps the variants whose argument at index accepts tok and which
// declare at least one further argument, then resolves the next position
func (r *Resolver) advance(ctx context.Context, p parseContext, tok scanner.Token, variants []catalog.CommandVariant, index int, command string) (Result, bool) {
	var next []catalog.CommandVariant
	for _, v := range variants {
		if MatchArgument(tok, v.Arguments[index]) && len(v.Arguments) > index+1 {
			next = append(next, v)
		}
	}

	if len(next) == 0 {
		r.log.Debug().
			Str("command", command).
			Int("index", index).
			Str("token", tok.Text).
			Msg("No variant continues past token")
		return Result{}, false
	}

	return r.resolveArgument(ctx, p.at(tok.End()), next, index+1, command)
}

// expandMultiple adds, for every variant whose argument at index may repeat,
// a sibling variant with that argument duplicated in place
func expandMultiple(variants []catalog.CommandVariant, index int) []catalog.CommandVariant {
	out := make([]catalog.CommandVariant, 0, len(variants))
	for _, v := range variants {
		out = append(out, v)
		if index >= len(v.Arguments) || !v.Arguments[index].AllowMultiple {
			continue
		}

		args := make([]catalog.ArgumentType, 0, len(v.Arguments)+1)
		args = append(args, catalog.CloneArguments(v.Arguments[:index+1])...)
		args = append(args, v.Arguments[index].Clone())
		args = append(args, catalog.CloneArguments(v.Arguments[index+1:])...)

		dup := v
		dup.Arguments = args
		out = append(out, dup)
	}
	return out
}

// spliceSubcommands replaces a subcommand placeholder at index with one
// variant per known subcommand: a literal argument naming the subcommand
// followed by that subcommand's own arguments
func (r *Resolver) spliceSubcommands(variants []catalog.CommandVariant, index int, command string) []catalog.CommandVariant {
	out := make([]catalog.CommandVariant, 0, len(variants))
	for _, v := range variants {
		if index >= len(v.Arguments) || v.Arguments[index].Kind != catalog.ArgumentSubcommand {
			out = append(out, v)
			continue
		}

		subs := r.catalog.ListSubcommands(command)
		if len(subs) == 0 {
			r.log.Debug().Str("command", command).Msg("No subcommands registered")
			continue
		}

		for _, sub := range subs {
			literal := catalog.ArgumentType{
				Name: "subcommand",
				Kind: catalog.ArgumentString,
				Data: catalog.AdditionalData{Values: []string{sub.Name}},
			}

			subArgs := expandCoordinates(catalog.CloneArguments(sub.Arguments))
			args := make([]catalog.ArgumentType, 0, len(v.Arguments)+len(subArgs))
			args = append(args, catalog.CloneArguments(v.Arguments[:index])...)
			args = append(args, literal)
			args = append(args, subArgs...)
			args = append(args, catalog.CloneArguments(v.Arguments[index+1:])...)

			spliced := v
			spliced.Arguments = args
			out = append(out, spliced)
		}
	}
	return out
}
