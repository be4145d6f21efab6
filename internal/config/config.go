// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vmunix/takeoutsort/internal/organizer"
)

// Config is the root configuration structure.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Filter  FilterConfig  `toml:"filter"`
	Output  OutputConfig  `toml:"output"`
	Input   InputConfig   `toml:"input"`
	History HistoryConfig `toml:"history"`
	Run     RunConfig     `toml:"run"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// FilterConfig selects which files are left out of the organized tree.
type FilterConfig struct {
	Enabled         bool     `toml:"enabled"`
	Rules           []string `toml:"rules"`
	DSLRMakes       []string `toml:"dslr_makes"`
	SoftwareMarkers []string `toml:"software_markers"`
	EditedSuffixes  []string `toml:"edited_suffixes"`
}

type OutputConfig struct {
	Root          string `toml:"root"`
	UnknownBucket string `toml:"unknown_bucket"`
	Collision     string `toml:"collision"`
	ReuseDateDirs bool   `toml:"reuse_date_dirs"`
}

type InputConfig struct {
	ExtraExtensions []string `toml:"extra_extensions"`
}

// HistoryConfig configures the SQLite database holding the import ledger
// and the metadata cache.
type HistoryConfig struct {
	Enabled  bool          `toml:"enabled"`
	Path     string        `toml:"path"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

type RunConfig struct {
	Workers int `toml:"workers"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(toml.MetaData{})
	return cfg
}

// Load reads, parses and validates the configuration file.
// Returns *ConfigError when environment variables are missing or validation fails.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file.
// Missing environment variables are left as literal ${VAR} text.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, nil, fmt.Errorf("parsing config: unknown keys: %v", keys)
	}

	cfg.applyDefaults(md)
	cfg.Output.Root = expandHome(cfg.Output.Root)
	cfg.History.Path = expandHome(cfg.History.Path)
	return &cfg, missing, nil
}

// applyDefaults fills unset values. Booleans that default to true are only
// set when the file does not mention them.
func (c *Config) applyDefaults(md toml.MetaData) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if !md.IsDefined("filter", "enabled") {
		c.Filter.Enabled = true
	}
	if len(c.Filter.Rules) == 0 {
		c.Filter.Rules = organizer.RuleNames()
	}
	if c.Output.UnknownBucket == "" {
		c.Output.UnknownBucket = organizer.DefaultUnknownBucket
	}
	if c.Output.Collision == "" {
		c.Output.Collision = "suffix"
	}
	if !md.IsDefined("history", "enabled") {
		c.History.Enabled = true
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
	if c.History.CacheTTL == 0 {
		c.History.CacheTTL = 30 * 24 * time.Hour
	}
	if c.Run.Workers == 0 {
		c.Run.Workers = 4
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)

// substituteEnvVars replaces environment references. Unresolved references
// stay in place and are reported in missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case "-":
			if !ok || value == "" {
				return arg
			}
			return value
		case "?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
