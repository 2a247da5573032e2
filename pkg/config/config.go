// Package config loads eggsposition settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file (default $XDG_CONFIG_HOME/eggsposition/config.toml)
//  3. EGGSPOSITION_* environment variables, optionally seeded from a .env file
//
// Example config.toml:
//
//	[render]
//	engine = "neato"
//
//	[server]
//	addr = ":9090"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/eggsposition/eggsposition/pkg/render/nodelink"
)

const appName = "eggsposition"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config is the complete application configuration.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Store   StoreConfig   `toml:"store"`
	Convert ConvertConfig `toml:"convert"`
}

type RenderConfig struct {
	Engine   string `toml:"engine"`
	Detailed bool   `toml:"detailed"`
}

type ServerConfig struct {
	Addr           string `toml:"addr"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
}

type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"` // Empty means the XDG cache directory
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

type StoreConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"` // Used by the file backend
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type ConvertConfig struct {
	StrictMembers bool `toml:"strict_members"`
}

// Duration is a time.Duration written as a Go duration string ("36h").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{Engine: string(nodelink.DefaultEngine)},
		Server: ServerConfig{Addr: ":8080", MaxUploadBytes: 10 << 20},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Store: StoreConfig{Backend: StoreMemory, MongoDatabase: appName},
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. With an empty path the default location is used and a missing
// file is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if !explicit && os.IsNotExist(err) {
				err = nil
			}
			if err != nil {
				return Config{}, err
			}
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Variables already set are kept, and missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from EGGSPOSITION_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	str("EGGSPOSITION_ADDR", &c.Server.Addr)
	str("EGGSPOSITION_ENGINE", &c.Render.Engine)
	str("EGGSPOSITION_CACHE", &c.Cache.Backend)
	str("EGGSPOSITION_CACHE_DIR", &c.Cache.Dir)
	str("EGGSPOSITION_REDIS_URL", &c.Cache.RedisURL)
	str("EGGSPOSITION_STORE", &c.Store.Backend)
	str("EGGSPOSITION_STORE_DIR", &c.Store.Dir)
	str("EGGSPOSITION_MONGO_URI", &c.Store.MongoURI)
	str("EGGSPOSITION_MONGO_DB", &c.Store.MongoDatabase)

	if v, ok := lookup("EGGSPOSITION_STRICT_MEMBERS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("EGGSPOSITION_STRICT_MEMBERS: %w", err)
		}
		c.Convert.StrictMembers = b
	}
	if v, ok := lookup("EGGSPOSITION_MAX_UPLOAD_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("EGGSPOSITION_MAX_UPLOAD_BYTES: %w", err)
		}
		c.Server.MaxUploadBytes = n
	}
	return nil
}

// Validate rejects unknown backends and engines, and backends missing their
// connection settings.
func (c Config) Validate() error {
	if _, err := nodelink.ValidateEngine(c.Render.Engine); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend redis requires redis_url")
		}
	default:
		return fmt.Errorf("unknown cache backend: %s (valid: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("store backend file requires dir")
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store backend mongo requires mongo_uri")
		}
	default:
		return fmt.Errorf("unknown store backend: %s (valid: memory, file, mongo)", c.Store.Backend)
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	return nil
}

// CacheDir returns the configured cache directory, defaulting to the XDG cache
// home (~/.cache/eggsposition).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
