// Package view renders completion results for the terminal.
package view

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/mcfunction/internal/completion"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	operatorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	rangeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// Render lists the items one per line with their replacement range. ok
// false renders the no-completion notice.
func Render(result completion.Result, ok bool) string {
	if !ok {
		return emptyStyle.Render("✗ No completions apply here")
	}
	if len(result.Items) == 0 {
		return rangeStyle.Render("No candidates")
	}

	width := 0
	for _, item := range result.Items {
		width = max(width, len(item.Label))
	}

	var b strings.Builder
	for _, item := range result.Items {
		style := labelStyle
		if item.Kind == completion.KindOperator {
			style = operatorStyle
		}

		b.WriteString(style.Render(item.Label))
		b.WriteString(strings.Repeat(" ", width-len(item.Label)+2))
		b.WriteString(rangeStyle.Render(FormatRange(item.Range)))
		if item.Detail != "" {
			b.WriteString("  " + detailStyle.Render(item.Detail))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// FormatRange prints a range as line:start-end
func FormatRange(r completion.Range) string {
	if r.Empty() {
		return fmt.Sprintf("%d:%d", r.StartLine, r.StartColumn)
	}
	return fmt.Sprintf("%d:%d-%d", r.StartLine, r.StartColumn, r.EndColumn)
}

// Format executes tmpl once per item, joining the outputs with newlines.
// Templates see the item fields plus Kind as a string, and every sprig
// function.
func Format(tmpl string, result completion.Result) (string, error) {
	t, err := template.New("item").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("invalid format template: %w", err)
	}

	lines := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		var buf bytes.Buffer
		if err := t.Execute(&buf, templateItem{Item: item, Kind: item.Kind.String()}); err != nil {
			return "", fmt.Errorf("failed to render %q: %w", item.Label, err)
		}
		lines = append(lines, buf.String())
	}

	return strings.Join(lines, "\n"), nil
}

type templateItem struct {
	completion.Item
	Kind string
}
