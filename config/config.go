package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/uicctools/cardfs/internal/util"
)

// CLI verbosity values, mapped onto internal log levels by [Config.Merge].
const (
	ErrorVerbose = 1
	WarnVerbose  = 2
	InfoVerbose  = 3
	DebugVerbose = 4
	TraceVerbose = 5
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultPreferNames renders paths and prompts by file name where one
	// exists, falling back to fids.
	DefaultPreferNames = true

	// DefaultIgnoreExisting keeps tree building strict: duplicate fids or
	// names in a definitions file are an error rather than skipped.
	DefaultIgnoreExisting = false
)

// Config contains runtime configuration for assembling a card filesystem
// tree and running sessions over it.
type Config struct {
	LogLvl util.LogLevel // Internal log level (Default info)

	// Definitions is the path of a YAML/JSON tree definitions file loaded
	// on top of the built-in catalogs. Empty means built-ins only.
	Definitions string

	PreferNames    bool // Render paths by name where available (Default true)
	IgnoreExisting bool // Skip duplicate fid/name definitions instead of failing (Default false)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions. LogLvl here is the CLI verbosity (1 error .. 5 trace), not
// the internal level.
type ConfigOverride struct {
	LogLvl         *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	Definitions    *string `yaml:"definitions,omitempty" json:"definitions,omitempty"`
	PreferNames    *bool   `yaml:"prefer_names,omitempty" json:"prefer_names,omitempty"`
	IgnoreExisting *bool   `yaml:"ignore_existing,omitempty" json:"ignore_existing,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:         DefaultLogLvl,
		PreferNames:    DefaultPreferNames,
		IgnoreExisting: DefaultIgnoreExisting,
	}
}

// NewConfig creates a Config from defaults with the override applied.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config. The CLI
// verbosity is clamped to [1,5] and converted to the internal log level.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		v := *override.LogLvl
		if v < ErrorVerbose {
			v = ErrorVerbose
		}
		if v > TraceVerbose {
			v = TraceVerbose
		}
		lvls := [5]util.LogLevel{
			util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel,
		}
		c.LogLvl = lvls[v-1]
	}
	if override.Definitions != nil {
		c.Definitions = *override.Definitions
	}
	if override.PreferNames != nil {
		c.PreferNames = *override.PreferNames
	}
	if override.IgnoreExisting != nil {
		c.IgnoreExisting = *override.IgnoreExisting
	}
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
