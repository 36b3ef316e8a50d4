// Package config handles loading and merging of mcfunction tool settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/mcfunction/internal/derrors"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".mcfunction.yml",
	".mcfunction.yaml",
	".mcfunction.toml",
	".mcfunction.json",
}

const (
	// GlobalConfigName is the name of the global config file
	GlobalConfigName = "config.yml"
)

var defaultConfig = []byte(`
log_level: warn
line_number: 1
`)

// Config holds the settings shared by every mcfunction command
type Config struct {
	LogLevel   string `koanf:"log_level"`
	Catalog    string `koanf:"catalog"`     // catalog file, empty for the built-in catalog
	Schemas    string `koanf:"schemas"`     // directory of JSON schema documents
	LineNumber int    `koanf:"line_number"` // line reported in completion ranges
	Format     string `koanf:"format"`      // output template for completion items
}

// Defaults returns the built-in settings every loaded file is merged onto
func Defaults() *Config {
	k := koanf.New(".")
	cfg := &Config{}

	// The embedded defaults are constant; a failure here is a programming error.
	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}
	if err := k.Unmarshal("", cfg); err != nil {
		panic(fmt.Sprintf("invalid default config: %v", err))
	}

	return cfg
}

// HasLocalConfig checks if a directory has a local configuration file
func HasLocalConfig(dir string) bool {
	for _, name := range SupportedConfigNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// cachedConfig stores a parsed config with its modification time
type cachedConfig struct {
	config  *Config
	modTime time.Time
	size    int64
}

// Loader handles loading and parsing configuration files
type Loader struct {
	parsedCache map[string]*cachedConfig
}

// New creates a new config loader
func New() *Loader {
	return &Loader{parsedCache: make(map[string]*cachedConfig)}
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, derrors.NewConfigurationError(path, fmt.Sprintf("unsupported config format: %s", ext), nil)
	}
}

// Load reads and parses a configuration file. Relative catalog and schema
// paths are resolved against the directory holding the file.
func (l *Loader) Load(path string) (*Config, error) {
	fileInfo, statErr := os.Stat(path)
	if cached, exists := l.parsedCache[path]; exists {
		if statErr == nil && !fileInfo.ModTime().After(cached.modTime) && fileInfo.Size() == cached.size {
			return cached.config, nil
		}
		delete(l.parsedCache, path)
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	dir := filepath.Dir(path)
	cfg.Catalog = resolvePath(dir, cfg.Catalog)
	cfg.Schemas = resolvePath(dir, cfg.Schemas)

	if statErr == nil {
		l.parsedCache[path] = &cachedConfig{
			config:  cfg,
			modTime: fileInfo.ModTime(),
			size:    fileInfo.Size(),
		}
	}

	return cfg, nil
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Merge merges parent and child configs, with child taking precedence for
// every field it sets
func Merge(parent, child *Config) *Config {
	merged := *parent

	if child.LogLevel != "" {
		merged.LogLevel = child.LogLevel
	}
	if child.Catalog != "" {
		merged.Catalog = child.Catalog
	}
	if child.Schemas != "" {
		merged.Schemas = child.Schemas
	}
	if child.LineNumber != 0 {
		merged.LineNumber = child.LineNumber
	}
	if child.Format != "" {
		merged.Format = child.Format
	}

	return &merged
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "mcfunction", GlobalConfigName), nil
}

// FindConfigFiles searches for config files from current dir up to root
// Returns paths in order from root to leaf (for proper merging)
func FindConfigFiles(startDir string) ([]string, error) {
	var configs []string
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		for _, name := range SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				configs = append(configs, path)
				break // Only one config per directory
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	for i, j := 0, len(configs)-1; i < j; i, j = i+1, j-1 {
		configs[i], configs[j] = configs[j], configs[i]
	}

	return configs, nil
}

// LoadHierarchy merges the defaults, the global config and every config
// from the filesystem root down to dir. It returns the files that were applied.
func (l *Loader) LoadHierarchy(dir string) (*Config, []string, error) {
	merged := Defaults()
	var applied []string

	if globalPath, err := GetGlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			// An invalid global config is skipped so local configs still apply.
			if globalCfg, err := l.Load(globalPath); err == nil {
				merged = Merge(merged, globalCfg)
				applied = append(applied, globalPath)
			}
		}
	}

	configFiles, err := FindConfigFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	for _, path := range configFiles {
		cfg, err := l.Load(path)
		if err != nil {
			return nil, append(applied, path), err
		}
		merged = Merge(merged, cfg)
		applied = append(applied, path)
	}

	return merged, applied, nil
}
