package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_Format(t *testing.T) {
	dir := setupProject(t, "")

	tests := []struct {
		name   string
		line   string
		cursor int
		format string
		want   string
	}{
		{
			name:   "command names",
			line:   "g",
			cursor: -1,
			format: "{{ .Label }}",
			want:   "gamerule\ngive\n",
		},
		{
			name:   "string values with range",
			line:   "gamerule k",
			cursor: -1,
			format: "{{ .Label }} {{ .Range.StartColumn }}-{{ .Range.EndColumn }}",
			want:   "keepInventory 10-11\n",
		},
		{
			name:   "boolean",
			line:   "gamerule keepInventory t",
			cursor: -1,
			format: "{{ .Label }}",
			want:   "true\n",
		},
		{
			name:   "schema values",
			line:   "give @s ",
			cursor: -1,
			format: "{{ .Label | upper }}",
			want:   "DIAMOND\nSTICK\n",
		},
		{
			name:   "explicit cursor",
			line:   "gamerule keepInventory",
			cursor: 10,
			format: "{{ .Label }}",
			want:   "keepInventory\n",
		},
		{
			name:   "nothing applies",
			line:   "unknown ",
			cursor: -1,
			format: "{{ .Label }}",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Complete(context.Background(), CompleteParams{
				Common: Common{Dir: dir, Output: &out},
				Line:   tt.line,
				Cursor: tt.cursor,
				Format: tt.format,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestComplete_Render(t *testing.T) {
	dir := setupProject(t, "")

	var out bytes.Buffer
	err := Complete(context.Background(), CompleteParams{
		Common:     Common{Dir: dir, Output: &out},
		Line:       "gamerule ",
		Cursor:     -1,
		LineNumber: 4,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "keepInventory")
	assert.Contains(t, out.String(), "4:10")

	out.Reset()
	err = Complete(context.Background(), CompleteParams{
		Common: Common{Dir: dir, Output: &out},
		Line:   "unknown ",
		Cursor: -1,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No completions apply here")
}

func TestComplete_ConfiguredLineAndFormat(t *testing.T) {
	dir := setupProject(t, "line_number: 7\nformat: '{{ .Range.StartLine }}:{{ .Label }}'\n")

	var out bytes.Buffer
	err := Complete(context.Background(), CompleteParams{
		Common: Common{Dir: dir, Output: &out},
		Line:   "gamerule d",
		Cursor: -1,
	})
	require.NoError(t, err)
	assert.Equal(t, "7:doDaylightCycle\n", out.String())
}

func TestComplete_InvalidFormat(t *testing.T) {
	dir := setupProject(t, "")

	err := Complete(context.Background(), CompleteParams{
		Common: Common{Dir: dir, Output: &bytes.Buffer{}},
		Line:   "g",
		Cursor: -1,
		Format: "{{ .Label",
	})
	assert.Error(t, err)
}
