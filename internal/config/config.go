package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/greenleaf-co/plantshop/internal/catalog"
)

// DefaultPath is read when no --config flag is given and the file exists
const DefaultPath = "plantshop.yaml"

// Config represents the plantshop configuration file
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Server  ServerConfig  `yaml:"server"`
}

// CatalogConfig points at the remote plant catalog
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the web storefront
type ServerConfig struct {
	Port string `yaml:"port"`
	// SessionTTL is how long an idle visitor session is kept
	SessionTTL  time.Duration `yaml:"session_ttl"`
	MaxSessions int           `yaml:"max_sessions"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Catalog: CatalogConfig{
			BaseURL: catalog.DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Port:        "8888",
			SessionTTL:  2 * time.Hour,
			MaxSessions: 10000,
		},
	}
}

// Load reads defaults, then the YAML file at path, then PLANTSHOP_* environment
// variables. An empty path reads DefaultPath only if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("PLANTSHOP_CATALOG_URL")); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANTSHOP_CATALOG_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PLANTSHOP_CATALOG_TIMEOUT %q: %w", v, err)
		}
		c.Catalog.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv("PLANTSHOP_PORT")); v != "" {
		c.Server.Port = v
	}
	return nil
}

// NewCatalogClient builds a catalog client from the configuration
func (c Config) NewCatalogClient() *catalog.Client {
	return catalog.NewClient(c.Catalog.BaseURL, c.Catalog.Timeout)
}
