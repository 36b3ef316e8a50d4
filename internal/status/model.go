package status

import "github.com/NikitaCOEUR/mcfunction/internal/config"

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Configuration
	ConfigFiles []string
	Config      *config.Config
	LocalConfig bool // dir itself holds a configuration file

	// Catalog
	CatalogSource     string // file path, or empty for the built-in catalog
	CatalogError      string
	Variants          int
	Commands          []string
	SelectorArguments []string

	// Schemas
	SchemaDir       string
	SchemaDocuments []string
	SchemaError     string
}
