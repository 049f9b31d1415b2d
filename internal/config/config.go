package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	serr "renumber/internal/errors"
	"renumber/internal/renumber"
	"renumber/internal/sequence"
)

// Config represents the application configuration structure.
// It holds the defaults for a renumbering run, safety settings and logging.
type Config struct {
	Renumber struct {
		Padding     int      `yaml:"padding"`     // Minimum digit width of new numbers
		StartAt     *int     `yaml:"start_at"`    // First number of every sequence (nil = lowest found)
		InPlace     bool     `yaml:"in_place"`    // Rename inside the source directory
		Destination string   `yaml:"destination"` // Copy target when not in place
		Sort        string   `yaml:"sort"`        // lexical or numeric
		Match       []string `yaml:"match"`       // Glob patterns selecting files
	} `yaml:"renumber"`
	Settings struct {
		DryRun bool `yaml:"dry_run"` // If true, only print the plan
		Lock   bool `yaml:"lock"`    // Lock the source directory during a run
	} `yaml:"settings"`
	Logging struct {
		Debug bool `yaml:"debug"` // Enable debug output
		JSON  bool `yaml:"json"`  // Emit JSON log lines
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/renumber/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "renumber", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, serr.Wrapf(err, "error reading config file %s", path)
	}

	// Decoding onto the defaults keeps every key the file leaves out.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, serr.NewConfigError("error parsing config file", path, serr.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Renumber.Padding = renumber.DefaultPadding
	cfg.Renumber.Sort = sequence.SortLexical.String()
	cfg.Renumber.Match = []string{}
	cfg.Settings.Lock = true
	return cfg
}

// New creates a new configuration instance with default values.
// The init-config command writes it out as a starting point.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return serr.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return serr.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return serr.Wrap(err, "failed to write config file")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return serr.NewConfigError("nil config", "", serr.InvalidConfig, nil)
	}
	if c.Renumber.Padding < 0 {
		return serr.NewConfigError("padding must be >= 0", "renumber.padding", serr.InvalidConfig, nil)
	}
	if c.Renumber.StartAt != nil && *c.Renumber.StartAt < 0 {
		return serr.NewConfigError("start_at must be >= 0", "renumber.start_at", serr.InvalidConfig, nil)
	}
	if _, err := sequence.ParseSortMode(c.Renumber.Sort); err != nil {
		return err
	}
	for i, pattern := range c.Renumber.Match {
		if pattern == "" {
			return serr.NewConfigError(fmt.Sprintf("match pattern %d is empty", i), "renumber.match", serr.InvalidConfig, nil)
		}
	}
	return nil
}

// Options converts the configuration into engine options
func (c *Config) Options() (renumber.Options, error) {
	if err := c.Validate(); err != nil {
		return renumber.Options{}, err
	}
	mode, _ := sequence.ParseSortMode(c.Renumber.Sort)

	opts := renumber.DefaultOptions()
	opts.Padding = c.Renumber.Padding
	opts.InPlace = c.Renumber.InPlace
	opts.Destination = c.Renumber.Destination
	opts.Sort = mode
	opts.Match = append([]string(nil), c.Renumber.Match...)
	opts.DryRun = c.Settings.DryRun
	opts.Lock = c.Settings.Lock
	if c.Renumber.StartAt != nil {
		start := *c.Renumber.StartAt
		opts.StartAt = &start
	}
	return opts, nil
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Settings.Lock = false
	return cfg
}
