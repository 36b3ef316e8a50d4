// Package cli implements the mcfunction commands. Each command takes a
// Params struct and writes to an io.Writer so it can run from main or tests.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/mcfunction/internal/catalog"
	"github.com/NikitaCOEUR/mcfunction/internal/config"
	"github.com/NikitaCOEUR/mcfunction/internal/logger"
	"github.com/NikitaCOEUR/mcfunction/internal/schemastore"
	"github.com/NikitaCOEUR/mcfunction/internal/session"
)

// Common holds the settings shared by every command that resolves completions.
// Non-empty fields override the configuration hierarchy.
type Common struct {
	Dir      string // directory the config hierarchy is resolved from, cwd when empty
	LogLevel string
	Catalog  string
	Schemas  string
	Output   io.Writer // stdout when nil
}

func (c Common) out() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

// components holds initialized mcfunction components
type components struct {
	config  *config.Config
	files   []string
	log     *logger.Logger
	catalog *catalog.Catalog
	schemas *schemastore.Store
	session *session.Session
}

// initializeComponents loads the configuration, catalog and schema store
// and builds a session on top of them
func initializeComponents(common Common) (*components, error) {
	dir, err := resolveDir(common.Dir)
	if err != nil {
		return nil, err
	}

	cfg, files, err := config.New().LoadHierarchy(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = config.Merge(cfg, &config.Config{
		LogLevel: common.LogLevel,
		Catalog:  common.Catalog,
		Schemas:  common.Schemas,
	})

	log := logger.New(cfg.LogLevel, os.Stderr)
	log.Debug().Strs("files", files).Str("catalog", cfg.Catalog).Msg("Configuration loaded")

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	var schemas *schemastore.Store
	if cfg.Schemas != "" {
		schemas, err = schemastore.LoadDir(cfg.Schemas)
		if err != nil {
			return nil, fmt.Errorf("failed to load schemas: %w", err)
		}
		log.Debug().Strs("documents", schemas.Documents()).Msg("Schemas loaded")
	}

	return &components{
		config:  cfg,
		files:   files,
		log:     log,
		catalog: cat,
		schemas: schemas,
		session: session.New(cat, schemas, log),
	}, nil
}

// loadCatalog reads path, or returns the built-in catalog when path is empty
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func resolveDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return currentDir, nil
}
