package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	b.WriteString(renderConfig(data))
	b.WriteString("\n")

	b.WriteString(renderCatalog(data))
	b.WriteString("\n")

	b.WriteString(renderSchemas(data))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConfig(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	if len(data.ConfigFiles) == 0 {
		b.WriteString("   " + subtleStyle.Render("No configuration files found, using defaults") + "\n")
	}
	for i, path := range data.ConfigFiles {
		b.WriteString(fmt.Sprintf("   %d. %s %s\n", i+1, valueStyle.Render(path), successStyle.Render("✓")))
	}
	if !data.LocalConfig {
		b.WriteString("   " + subtleStyle.Render("No local configuration, run 'mcfunction init' to create one") + "\n")
	}

	if cfg := data.Config; cfg != nil {
		b.WriteString("   " + keyStyle.Render("Log level: ") + valueStyle.Render(cfg.LogLevel) + "\n")
		b.WriteString("   " + keyStyle.Render("Line number: ") + valueStyle.Render(fmt.Sprintf("%d", cfg.LineNumber)))
		if cfg.Format != "" {
			b.WriteString("\n   " + keyStyle.Render("Format: ") + subtleStyle.Render(cfg.Format))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderCatalog(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📚 Catalog:") + "\n")

	source := data.CatalogSource
	if source == "" {
		source = "built-in"
	}
	b.WriteString("   " + keyStyle.Render("Source: ") + subtleStyle.Render(source) + "\n")

	if data.CatalogError != "" {
		b.WriteString("   " + errorStyle.Render("✗ "+data.CatalogError))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Commands: ") +
		valueStyle.Render(fmt.Sprintf("%d (%d variants)", len(data.Commands), data.Variants)) + "\n")
	if len(data.Commands) > 0 {
		b.WriteString("      " + subtleStyle.Render(truncateString(strings.Join(data.Commands, ", "), 70)) + "\n")
	}
	b.WriteString("   " + keyStyle.Render("Selector arguments: ") +
		valueStyle.Render(fmt.Sprintf("%d", len(data.SelectorArguments))))
	if len(data.SelectorArguments) > 0 {
		b.WriteString("\n      " + subtleStyle.Render(truncateString(strings.Join(data.SelectorArguments, ", "), 70)))
	}

	return b.String()
}

func renderSchemas(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🧩 Schemas:") + "\n")

	if data.SchemaDir == "" {
		b.WriteString("   " + subtleStyle.Render("No schema directory configured"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Directory: ") + subtleStyle.Render(data.SchemaDir) + "\n")
	if data.SchemaError != "" {
		b.WriteString("   " + errorStyle.Render("✗ "+data.SchemaError))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Documents: ") + valueStyle.Render(fmt.Sprintf("%d", len(data.SchemaDocuments))))
	for _, doc := range data.SchemaDocuments {
		b.WriteString("\n      " + subtleStyle.Render(doc))
	}

	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
