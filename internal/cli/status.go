package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/mcfunction/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	Dir    string    // cwd when empty
	Output io.Writer // stdout when nil
}

// Status displays the configuration, catalog and schemas in effect for a directory
func Status(params StatusParams) error {
	dir, err := resolveDir(params.Dir)
	if err != nil {
		return err
	}

	data, err := status.Collect(dir)
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	w := params.Output
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintln(w, status.Render(data))
	return err
}
