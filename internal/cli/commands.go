package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// CommandsParams contains parameters for the Commands command
type CommandsParams struct {
	Common
	Prefix    string // only list names starting with Prefix
	Selectors bool   // list selector arguments instead of commands
}

// Commands lists the distinct command names of the active catalog with the
// number of overloads and the first description found
func Commands(params CommandsParams) error {
	comps, err := initializeComponents(params.Common)
	if err != nil {
		return err
	}

	w := params.out()

	if params.Selectors {
		names := filterPrefix(comps.catalog.SelectorArgumentNames(), params.Prefix)
		_, err := fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Selector arguments (%d):", len(names))))
		if err != nil {
			return err
		}
		for _, def := range comps.catalog.ListSelectorArguments() {
			if !strings.HasPrefix(def.Name, params.Prefix) {
				continue
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", nameStyle.Render(def.Name), countStyle.Render(def.Kind.String())); err != nil {
				return err
			}
		}
		return nil
	}

	names := filterPrefix(comps.catalog.CommandNames(), params.Prefix)
	if _, err := fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Commands (%d):", len(names)))); err != nil {
		return err
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	for _, name := range names {
		variants := comps.catalog.Variants(name)
		description := ""
		for _, v := range variants {
			if v.Description != "" {
				description = v.Description
				break
			}
		}

		line := "  " + nameStyle.Render(name) + strings.Repeat(" ", width-len(name)+2) +
			countStyle.Render(fmt.Sprintf("%d variant(s)", len(variants)))
		if description != "" {
			line += "  " + descStyle.Render(description)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

func filterPrefix(names []string, prefix string) []string {
	if prefix == "" {
		return names
	}
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}
