// Package config loads checker settings from .modcheck.toml or
// .modcheck.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/modcheck/modlang"
)

// SearchFiles are the file names Discover looks for, in order.
var SearchFiles = []string{".modcheck.toml", ".modcheck.yaml", ".modcheck.yml"}

// Config holds the complete checker configuration
type Config struct {
	Check CheckConfig `toml:"check" yaml:"check"`
	Log   LogConfig   `toml:"log" yaml:"log"`
	Watch WatchConfig `toml:"watch" yaml:"watch"`
}

// CheckConfig holds the grammar policy
type CheckConfig struct {
	AllowEmptySections bool   `toml:"allow_empty_sections" yaml:"allow_empty_sections"`
	AllowTrailingInput bool   `toml:"allow_trailing_input" yaml:"allow_trailing_input"`
	RequireSection     bool   `toml:"require_section" yaml:"require_section"`
	Extension          string `toml:"extension" yaml:"extension"`
}

// LogConfig holds commonlog settings. An empty File logs to stderr.
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Interval Duration `toml:"interval" yaml:"interval"`
}

// Duration wraps time.Duration for text decoding ("500ms", "2s")
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the file at path, picking the decoder by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Discover loads the first of SearchFiles present in dir. It returns the
// default configuration and an empty path when there is none.
func Discover(dir string) (*Config, string, error) {
	for _, name := range SearchFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("stat config: %w", err)
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return Default(), "", nil
}

func (c *Config) applyDefaults() {
	if c.Check.Extension == "" {
		c.Check.Extension = ".mod"
	}
	if c.Watch.Interval.Duration == 0 {
		c.Watch.Interval.Duration = time.Second
	}
}

// Validate reports settings no component can work with.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Check.Extension, ".") {
		return fmt.Errorf("check.extension %q must start with a dot", c.Check.Extension)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	if c.Watch.Interval.Duration < 0 {
		return fmt.Errorf("watch.interval must not be negative, got %s", c.Watch.Interval)
	}
	return nil
}

// ParserOptions maps the check policy to parser options.
func (c *Config) ParserOptions() []modlang.Option {
	var opts []modlang.Option
	if c.Check.AllowEmptySections {
		opts = append(opts, modlang.WithEmptySections())
	}
	if c.Check.AllowTrailingInput {
		opts = append(opts, modlang.WithTrailingInput())
	}
	if c.Check.RequireSection {
		opts = append(opts, modlang.WithRequireSection())
	}
	return opts
}

// LogPath returns the log file as commonlog.Configure expects it.
func (c *Config) LogPath() *string {
	if c.Log.File == "" {
		return nil
	}
	path := os.ExpandEnv(c.Log.File)
	return &path
}
