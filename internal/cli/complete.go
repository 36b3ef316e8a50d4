package cli

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/mcfunction/internal/timing"
	"github.com/NikitaCOEUR/mcfunction/internal/trace"
	"github.com/NikitaCOEUR/mcfunction/internal/view"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Common
	Line       string
	Cursor     int    // byte offset into Line, negative for the end of the line
	LineNumber int    // reported in ranges, 0 uses the configured line number
	Format     string // item template, overrides the configured format
}

// Complete prints the completions for the cursor position on a single line
func Complete(ctx context.Context, params CompleteParams) error {
	timer := timing.NewTimer()

	comps, err := initializeComponents(params.Common)
	if err != nil {
		return err
	}
	timer.Mark("load")

	cursor := params.Cursor
	if cursor < 0 {
		cursor = len(params.Line)
	}

	lineNumber := params.LineNumber
	if lineNumber <= 0 {
		lineNumber = comps.config.LineNumber
	}

	endRegion := trace.Region(ctx, "complete")
	resp := comps.session.Complete(ctx, lineNumber, params.Line, cursor)
	endRegion()
	timer.Mark("resolve")

	comps.log.Debug().
		Int("cursor", cursor).
		Bool("ok", resp.OK).
		Int("items", len(resp.Result.Items)).
		Str("timing", timer.Summary()).
		Msg("Completion resolved")

	w := params.out()

	format := params.Format
	if format == "" {
		format = comps.config.Format
	}
	if format == "" {
		_, err := fmt.Fprintln(w, view.Render(resp.Result, resp.OK))
		return err
	}

	if !resp.OK || len(resp.Result.Items) == 0 {
		return nil
	}
	out, err := view.Format(format, resp.Result)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
