// Package config loads the HCL configuration file shared by every
// subcommand.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pokerequity/internal/rankcache"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "pokerequity.hcl"

// Config represents the complete configuration
type Config struct {
	Engine *EngineConfig `hcl:"engine,block"`
	Cache  *CacheConfig  `hcl:"cache,block"`
	Store  *StoreConfig  `hcl:"store,block"`
	Log    *LogConfig    `hcl:"log,block"`
}

// EngineConfig sizes the enumeration worker pool
type EngineConfig struct {
	Workers int `hcl:"workers,optional"`
	Chunks  int `hcl:"chunks,optional"`
}

// CacheConfig locates the rank cache and how misses are handled
type CacheConfig struct {
	Path       string `hcl:"path,optional"`
	Sizes      []int  `hcl:"sizes,optional"`
	MissPolicy string `hcl:"miss_policy,optional"`
}

// StoreConfig locates the matchup result database
type StoreConfig struct {
	Path string `hcl:"path,optional"`
}

// LogConfig controls logger output
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Engine == nil {
		c.Engine = &EngineConfig{}
	}
	if c.Engine.Workers == 0 {
		c.Engine.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Engine.Chunks == 0 {
		c.Engine.Chunks = c.Engine.Workers * 8
	}

	if c.Cache == nil {
		c.Cache = &CacheConfig{}
	}
	if len(c.Cache.Sizes) == 0 {
		c.Cache.Sizes = []int{5}
	}
	if c.Cache.MissPolicy == "" {
		c.Cache.MissPolicy = "evaluate"
	}

	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Path == "" {
		c.Store.Path = "matchups.db"
	}

	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Engine.Workers < 1 {
		return fmt.Errorf("engine workers must be positive, got %d", c.Engine.Workers)
	}
	if c.Engine.Chunks < c.Engine.Workers {
		return fmt.Errorf("engine chunks (%d) must be at least workers (%d)", c.Engine.Chunks, c.Engine.Workers)
	}

	for _, size := range c.Cache.Sizes {
		if size != 5 && size != 7 {
			return fmt.Errorf("cache size %d not supported: want 5 or 7", size)
		}
	}
	if _, err := rankcache.ParseMissPolicy(c.Cache.MissPolicy); err != nil {
		return err
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("store path must not be empty")
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if !slices.Contains([]string{"text", "json", "logfmt"}, c.Log.Format) {
		return fmt.Errorf("invalid log format %q: want text, json or logfmt", c.Log.Format)
	}
	return nil
}

// MissPolicy returns the parsed cache miss policy.
func (c *Config) MissPolicy() rankcache.MissPolicy {
	p, _ := rankcache.ParseMissPolicy(c.Cache.MissPolicy)
	return p
}
