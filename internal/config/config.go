// Package config loads the skyline configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/skyline/config.toml (or
// ~/.config/skyline/config.toml) unless --config names another path:
//
//	default_length = 60
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[render]
//	format = "text,svg"
//	scale = 2
//
//	[server]
//	addr = ":8080"
//
// A missing default file is not an error; every field has a default. The
// environment variables SKYLINE_STORE, SKYLINE_STORE_DIR, SKYLINE_REDIS_ADDR,
// SKYLINE_MONGO_URI and SKYLINE_ADDR override the file.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render/silhouette/sink"
	"github.com/matzehuels/skyline/pkg/store"
	"github.com/matzehuels/skyline/pkg/street"
)

const appName = "skyline"

// Defaults for fields the file leaves unset.
const (
	DefaultLength = 40
	DefaultAddr   = ":8080"
	DefaultFormat = "text"
)

// Config is the decoded configuration file.
type Config struct {
	// DefaultLength is used by "skyline new" when --length is not given.
	DefaultLength int `toml:"default_length"`

	Store  Store  `toml:"store"`
	Render Render `toml:"render"`
	Server Server `toml:"server"`
	Cache  Cache  `toml:"cache"`
}

// Store selects the street storage backend.
type Store struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Render holds default render options.
type Render struct {
	Format string  `toml:"format"`
	Scale  float64 `toml:"scale"`
}

// Server configures "skyline serve".
type Server struct {
	Addr string `toml:"addr"`
}

// Cache configures the artifact cache.
type Cache struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultLength: DefaultLength,
		Store:         Store{Backend: store.BackendFile},
		Render:        Render{Format: DefaultFormat},
		Server:        Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns the config file location following XDG.
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

// Load reads the config file at path, or the default path when path is
// empty, then applies environment overrides. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config file")
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg.finish()
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config file %s", path)
	}
	return cfg.finish()
}

// Parse decodes TOML config text and applies environment overrides.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config")
	}
	return cfg.finish()
}

func (c *Config) finish() (*Config, error) {
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SKYLINE_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("SKYLINE_STORE_DIR"); v != "" {
		c.Store.Dir = v
	}
	if v := os.Getenv("SKYLINE_REDIS_ADDR"); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv("SKYLINE_MONGO_URI"); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv("SKYLINE_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SKYLINE_DEFAULT_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DefaultLength = n
		}
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.DefaultLength < street.MinLength || c.DefaultLength > street.MaxLength {
		return errors.New(errors.ErrCodeInvalidLength, "default_length %d must be between %d and %d",
			c.DefaultLength, street.MinLength, street.MaxLength)
	}
	if !slices.Contains(store.Backends, c.Store.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	if _, err := sink.ParseFormats(c.Render.Format); err != nil {
		return err
	}
	if c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render scale must not be negative")
	}
	return nil
}

// StoreConfig converts the [store] table for store.Open.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Backend:       c.Store.Backend,
		Dir:           c.Store.Dir,
		AppName:       appName,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		RedisPrefix:   c.Store.RedisPrefix,
		MongoURI:      c.Store.MongoURI,
		MongoDatabase: c.Store.MongoDatabase,
	}
}
