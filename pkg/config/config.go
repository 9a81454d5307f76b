// Package config loads the gridpress configuration file.
//
// The file is TOML and every section is optional:
//
//	[render]
//	font_family = "helvetica"
//	font_size = 16
//	layout_style = "grid-first"
//	columns = "auto"
//
//	[batch]
//	workers = 4
//
//	[cache]
//	backend = "redis"            # file | redis | none
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
//	[server]
//	addr = ":8080"
//
//	[template.title]
//	left = 36
//	top = 36
//
// A missing file is not an error; [Load] returns [Default] instead.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/render"
)

const (
	appName  = "gridpress"
	fileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the address the HTTP server listens on.
const DefaultAddr = ":8080"

// Config is the parsed configuration file.
type Config struct {
	Render   render.Options   `toml:"render"`
	Batch    Batch            `toml:"batch"`
	Cache    Cache            `toml:"cache"`
	Server   Server           `toml:"server"`
	Template *render.Template `toml:"template"`
}

// Batch configures directory conversion.
type Batch struct {
	Workers int `toml:"workers"` // zero means one per CPU
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend  string        `toml:"backend"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"` // zero keeps the per-tier defaults

	// Prefix is prepended to every key, so several deployments can share
	// one Redis database.
	Prefix string `toml:"prefix"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: render.DefaultOptions(),
		Cache:  Cache{Backend: BackendFile},
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gridpress/config.toml, falling back
// to ~/.config/gridpress/config.toml.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration at path, or at [DefaultPath] when path is
// empty. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if err := undecoded(md); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTemplate reads a page template file. The file holds the [title],
// [grid], [across] and [down] tables at top level.
func LoadTemplate(path string) (*render.Template, error) {
	var t render.Template
	md, err := toml.DecodeFile(path, &t)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse template %s", path)
	}
	if err := undecoded(md); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "template %s", path)
	}
	t.SetDefaults()
	return &t, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	case "":
		c.Cache.Backend = BackendFile
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
	}
	if c.Batch.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "batch workers must not be negative")
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Template != nil {
		c.Template.SetDefaults()
		c.Render.Template = c.Template
	}
	return nil
}

func undecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(names, ", "))
}
