// Package config loads biocrayon's CLI settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/biocrayon/pkg/colormap"
	"github.com/jmylchreest/biocrayon/pkg/colour"
	"github.com/jmylchreest/biocrayon/pkg/ramp"
)

// EnvPrefix is prepended to every environment variable, e.g. BIOCRAYON_FILL_MISSING.
const EnvPrefix = "BIOCRAYON"

// Config holds CLI settings.
type Config struct {
	DefaultColor string `mapstructure:"default_color"`
	FillMissing  bool   `mapstructure:"fill_missing"`
	LAB          bool   `mapstructure:"lab"`
	CommunityDir string `mapstructure:"community_dir"`
	Steps        int    `mapstructure:"steps"`
}

// Policy returns the lookup policy described by the config.
func (c *Config) Policy() colormap.Policy {
	return colormap.Policy{FillMissing: c.FillMissing, DefaultColor: c.DefaultColor}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"default-color": "default_color",
	"fill-missing":  "fill_missing",
	"lab":           "lab",
	"community-dir": "community_dir",
	"steps":         "steps",
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file; when set, it must exist.
	File string
	// Dirs are searched for biocrayon.yaml when File is empty.
	Dirs []string
	// Flags are bound over file and environment values when changed.
	Flags *pflag.FlagSet
}

// DefaultDirs returns the working directory and the user config directory.
func DefaultDirs() []string {
	dirs := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "biocrayon"))
	}
	return dirs
}

// DefaultCommunityDir is where community packs live unless configured otherwise.
func DefaultCommunityDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "biocrayon", "community")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "biocrayon", "community")
	}
	return "community"
}

// Load reads configuration. Precedence, highest first: changed flags,
// environment, config file, defaults.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("default_color", colormap.DefaultMissingColor)
	v.SetDefault("fill_missing", false)
	v.SetDefault("lab", false)
	v.SetDefault("community_dir", DefaultCommunityDir())
	v.SetDefault("steps", 10)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("biocrayon")
		v.SetConfigType("yaml")
		for _, dir := range opts.Dirs {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.File != "" || len(opts.Dirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if opts.File != "" || !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Config file not found - use defaults
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Used returns the config file that was read, if any.
func Used(opts Options) string {
	if opts.File != "" {
		return opts.File
	}
	for _, dir := range opts.Dirs {
		for _, ext := range viper.SupportedExts {
			p := filepath.Join(dir, "biocrayon."+ext)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func validateConfig(cfg *Config) error {
	if !colour.IsHex(cfg.DefaultColor) {
		return fmt.Errorf("default_color must be a #RRGGBB colour, got: %q", cfg.DefaultColor)
	}
	if cfg.Steps < 2 {
		return fmt.Errorf("steps must be at least 2, got: %d", cfg.Steps)
	}
	if cfg.Steps > ramp.DefaultSteps*16 {
		return fmt.Errorf("steps must be at most %d, got: %d", ramp.DefaultSteps*16, cfg.Steps)
	}
	return nil
}
