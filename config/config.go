package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/masmgr/sisync/internal/mks"
	"gopkg.in/yaml.v3"
)

// PasswordEnv overrides mks.password so it need not be stored in the config file.
const PasswordEnv = "SISYNC_PASSWORD"

// Config is the root configuration structure.
type Config struct {
	MKS      mks.Settings `json:"mks" yaml:"mks"`
	Filters  FilterConfig `json:"filters" yaml:"filters"`
	Output   OutputConfig `json:"output" yaml:"output"`
	Workers  int          `json:"workers" yaml:"workers"`   // Concurrent memberinfo queries
	LogLevel string       `json:"logLevel" yaml:"logLevel"` // logrus level name
}

// FilterConfig holds member path filtering options.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// PathFilter converts the filter config into the adapter's path filter.
func (f FilterConfig) PathFilter() mks.PathFilter {
	return mks.PathFilter{Include: f.Include, Exclude: f.Exclude}
}

// OutputConfig holds report output defaults.
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // console, json, csv, ci
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		MKS: mks.DefaultSettings(),
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Output: OutputConfig{
			Format: "console",
		},
		Workers:  1,
		LogLevel: "info",
	}
}

// candidateNames are searched in the working directory, then the home directory.
var candidateNames = []string{".sisync.yaml", ".sisync.yml", ".sisync.json"}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .json are decoded as JSON, anything else as YAML.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := decode(path, data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if pw := os.Getenv(PasswordEnv); pw != "" {
		cfg.MKS.Password = pw
	}
	return cfg, nil
}

func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range candidateNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if err := c.MKS.Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return &mks.ConfigurationError{Field: "workers", Reason: "must not be negative"}
	}
	return c.Filters.PathFilter().Validate()
}

// SaveConfig saves configuration to a file, as JSON or YAML by extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
