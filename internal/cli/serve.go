package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/completion"
	"github.com/NikitaCOEUR/mcfunction/internal/trace"
)

// maxRequestSize bounds a single request line
const maxRequestSize = 1 << 20

// ServeParams contains parameters for the Serve command
type ServeParams struct {
	Common
	Input io.Reader // stdin when nil
	Watch bool      // reload the configured catalog file when it changes
}

type serveRequest struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Line       string          `json:"line"`
	Cursor     *int            `json:"cursor,omitempty"` // end of line when absent
	LineNumber int             `json:"lineNumber,omitempty"`
}

type serveRange struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

type serveItem struct {
	Label      string     `json:"label"`
	InsertText string     `json:"insertText"`
	Detail     string     `json:"detail,omitempty"`
	Kind       string     `json:"kind"`
	Range      serveRange `json:"range"`
}

type serveResponse struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Generation uint64          `json:"generation"`
	OK         bool            `json:"ok"`
	Stale      bool            `json:"stale,omitempty"`
	Items      []serveItem     `json:"items"`
	Error      string          `json:"error,omitempty"`
}

// Serve answers completion requests read as JSON lines from Input, writing
// one JSON response line per request until Input ends or ctx is cancelled.
func Serve(ctx context.Context, params ServeParams) error {
	comps, err := initializeComponents(params.Common)
	if err != nil {
		return err
	}

	if params.Watch && comps.config.Catalog != "" {
		stop, err := catalog.Watch(comps.config.Catalog, func(cat *catalog.Catalog, err error) {
			if err != nil {
				comps.log.Warn().Str("catalog", comps.config.Catalog).Err(err).Msg("Keeping previous catalog")
				return
			}
			gen := comps.session.Reload(cat, comps.schemas)
			comps.log.Info().Uint64("generation", gen).Msg("Catalog reloaded")
		})
		if err != nil {
			return err
		}
		defer func() { _ = stop() }()
	}

	in := params.Input
	if in == nil {
		in = os.Stdin
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	encoder := json.NewEncoder(params.out())

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(scanner.Bytes()) == 0 {
			continue
		}

		resp := handleRequest(ctx, comps, scanner.Bytes())
		if err := encoder.Encode(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func handleRequest(ctx context.Context, comps *components, data []byte) serveResponse {
	var req serveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return serveResponse{Items: []serveItem{}, Error: "invalid request: " + err.Error()}
	}

	cursor := len(req.Line)
	if req.Cursor != nil {
		cursor = *req.Cursor
	}
	lineNumber := req.LineNumber
	if lineNumber <= 0 {
		lineNumber = comps.config.LineNumber
	}

	trace.Log(ctx, "serve", req.Line)
	resp := comps.session.Complete(ctx, lineNumber, req.Line, cursor)
	out := serveResponse{ID: req.ID, Generation: resp.Generation, Items: []serveItem{}}

	out.OK = comps.session.Apply(resp, func(result completion.Result) {
		for _, item := range result.Items {
			out.Items = append(out.Items, serveItem{
				Label:      item.Label,
				InsertText: item.InsertText,
				Detail:     item.Detail,
				Kind:       item.Kind.String(),
				Range: serveRange{
					StartLine:   item.Range.StartLine,
					StartColumn: item.Range.StartColumn,
					EndLine:     item.Range.EndLine,
					EndColumn:   item.Range.EndColumn,
				},
			})
		}
	})
	out.Stale = resp.OK && !out.OK

	return out
}
