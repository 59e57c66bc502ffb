// Package config loads archpad configuration from a TOML file with sane
// defaults. Flags on the serve command override file values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds archpad configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Catalog CatalogConfig `toml:"catalog"`
	Store   StoreConfig   `toml:"store"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr       string `toml:"addr"`
	CORSOrigin string `toml:"cors_origin"`
}

// CatalogConfig points at the palette source files.
type CatalogConfig struct {
	Path         string `toml:"path"`
	Descriptions string `toml:"descriptions"`
	Watch        bool   `toml:"watch"`
}

// Store backends selectable via StoreConfig.Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// StoreConfig selects and configures the design store backend.
type StoreConfig struct {
	Backend string `toml:"backend"` // "memory", "file", "redis", or "mongo"

	// File backend
	Dir string `toml:"dir"`

	// Redis backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// Mongo backend
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the configuration used when no file is present: a local
// server with file-backed designs next to the catalog data.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			CORSOrigin: "*",
		},
		Catalog: CatalogConfig{
			Path:         "data/catalog.json",
			Descriptions: "data/descriptions.json",
			Watch:        true,
		},
		Store: StoreConfig{
			Backend:   BackendFile,
			Dir:       "data/designs",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
	}
}

// Load reads a TOML config file, layering it over the defaults. A missing
// file at the default location is not an error; an explicitly requested file
// that cannot be read is.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendMongo:
		return nil
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
}
