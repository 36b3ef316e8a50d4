// Package status collects and displays the effective mcfunction setup for a
// directory: merged configuration, catalog and schema documents.
package status

import (
	"fmt"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/config"
	"github.com/NikitaCOEUR/mcfunction/internal/schemastore"
	"github.com/NikitaCOEUR/mcfunction/pkg/version"
)

// Collect gathers status information for dir. Catalog and schema load
// failures are reported in the returned data rather than as errors.
func Collect(dir string) (*Data, error) {
	data := &Data{
		CurrentDir:        dir,
		Version:           version.Version,
		ConfigFiles:       make([]string, 0),
		Commands:          make([]string, 0),
		SelectorArguments: make([]string, 0),
		SchemaDocuments:   make([]string, 0),
	}

	cfg, files, err := config.New().LoadHierarchy(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config hierarchy: %w", err)
	}
	data.Config = cfg
	data.ConfigFiles = append(data.ConfigFiles, files...)
	data.LocalConfig = config.HasLocalConfig(dir)

	collectCatalogInfo(data, cfg.Catalog)
	collectSchemaInfo(data, cfg.Schemas)

	return data, nil
}

func collectCatalogInfo(data *Data, path string) {
	data.CatalogSource = path

	var (
		cat *catalog.Catalog
		err error
	)
	if path == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(path)
	}
	if err != nil {
		data.CatalogError = err.Error()
		return
	}

	data.Variants = len(cat.ListCommands())
	data.Commands = cat.CommandNames()
	data.SelectorArguments = cat.SelectorArgumentNames()
}

func collectSchemaInfo(data *Data, dir string) {
	data.SchemaDir = dir
	if dir == "" {
		return
	}

	store, err := schemastore.LoadDir(dir)
	if err != nil {
		data.SchemaError = err.Error()
		return
	}
	data.SchemaDocuments = store.Documents()
}
