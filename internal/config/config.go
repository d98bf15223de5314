// Package config loads and validates guslee configuration.
//
// Configuration is resolved in three layers, later layers winning:
//  1. Built-in defaults (DefaultConfig)
//  2. A YAML config file, if one exists
//  3. GUSLEE_* environment variables
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	gerrors "github.com/Chemchu/guslee/internal/errors"
)

// Backend names accepted by search.backend.
const (
	BackendBleve  = "bleve"
	BackendSQLite = "sqlite"
)

// Config represents the complete guslee configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Garden  GardenConfig  `yaml:"garden" json:"garden"`
	Search  SearchConfig  `yaml:"search" json:"search"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GardenConfig configures the content tree to ingest.
type GardenConfig struct {
	// Dir is the content root. Ingestion fails hard if it is unreadable.
	Dir string `yaml:"dir" json:"dir"`

	// Extension is the document file extension, appended to extension-less
	// link targets during link extraction.
	Extension string `yaml:"extension" json:"extension"`

	// DefaultDocuments is the curated, ordered allow-list served for
	// degenerate queries (empty, wildcard, too short).
	DefaultDocuments []string `yaml:"default_documents" json:"default_documents"`
}

// SearchConfig configures ranking and caching.
type SearchConfig struct {
	// Backend selects the index backend: "bleve" (embedded, default)
	// or "sqlite" (FTS5).
	Backend string `yaml:"backend" json:"backend"`

	// TitleWeight is the boost applied to title-field matches.
	TitleWeight float64 `yaml:"title_weight" json:"title_weight"`

	// BodyWeight is the boost applied to body-field matches.
	BodyWeight float64 `yaml:"body_weight" json:"body_weight"`

	// DefaultLimit is the result limit used when a request carries no
	// usable limit value.
	DefaultLimit int `yaml:"default_limit" json:"default_limit"`

	// MinQueryLength is the minimum query length (in runes) for the
	// ranked path; shorter queries take the default-documents path.
	MinQueryLength int `yaml:"min_query_length" json:"min_query_length"`

	// CacheSize is the result cache capacity (LRU entries).
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	FilePath string `yaml:"file_path" json:"file_path"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Garden: GardenConfig{
			Dir:       "./garden",
			Extension: ".md",
			DefaultDocuments: []string{
				"welcome.md",
				"hello.md",
				"garden_styling.md",
				"kilbarrack.md",
				"first_job_in_ireland.md",
				"rathmines.md",
			},
		},
		Search: SearchConfig{
			Backend:        BackendBleve,
			TitleWeight:    2.0,
			BodyWeight:     1.0,
			DefaultLimit:   100,
			MinQueryLength: 3,
			CacheSize:      100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path (optional) and the environment.
// An empty path, or a missing file at path, yields defaults plus env.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Fall through to defaults.
		case err != nil:
			return nil, gerrors.New(gerrors.ErrCodeConfigInvalid,
				fmt.Sprintf("cannot read config file %s", path), err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, gerrors.New(gerrors.ErrCodeConfigInvalid,
					fmt.Sprintf("cannot parse config file %s", path), err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies GUSLEE_* environment variables on top of cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GUSLEE_GARDEN_DIR"); v != "" {
		cfg.Garden.Dir = v
	}
	if v := os.Getenv("GUSLEE_BACKEND"); v != "" {
		cfg.Search.Backend = v
	}
	if v := os.Getenv("GUSLEE_TITLE_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.TitleWeight = f
		}
	}
	if v := os.Getenv("GUSLEE_BODY_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.BodyWeight = f
		}
	}
	if v := os.Getenv("GUSLEE_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.CacheSize = n
		}
	}
	if v := os.Getenv("GUSLEE_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.DefaultLimit = n
		}
	}
	if v := os.Getenv("GUSLEE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Garden.Dir == "" {
		return gerrors.New(gerrors.ErrCodeConfigInvalid, "garden.dir must not be empty", nil)
	}
	if c.Garden.Extension != "" && !strings.HasPrefix(c.Garden.Extension, ".") {
		return gerrors.New(gerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("garden.extension must start with a dot, got %q", c.Garden.Extension), nil)
	}
	switch c.Search.Backend {
	case BackendBleve, BackendSQLite:
	default:
		return gerrors.New(gerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("search.backend must be %q or %q, got %q", BackendBleve, BackendSQLite, c.Search.Backend), nil)
	}
	if c.Search.TitleWeight <= 0 || c.Search.BodyWeight <= 0 {
		return gerrors.New(gerrors.ErrCodeConfigInvalid, "search weights must be positive", nil)
	}
	if c.Search.DefaultLimit <= 0 {
		return gerrors.New(gerrors.ErrCodeConfigInvalid, "search.default_limit must be positive", nil)
	}
	if c.Search.CacheSize <= 0 {
		return gerrors.New(gerrors.ErrCodeConfigInvalid, "search.cache_size must be positive", nil)
	}
	if c.Search.MinQueryLength < 0 {
		return gerrors.New(gerrors.ErrCodeConfigInvalid, "search.min_query_length must not be negative", nil)
	}
	return nil
}
