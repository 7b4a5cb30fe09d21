// Package config loads healthcheck settings from defaults, an rc file,
// HEALTHCHECK_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the resolved settings.
type Config struct {
	Bank      string `mapstructure:"bank"`
	Format    string `mapstructure:"format"`
	Color     bool   `mapstructure:"color"`
	Breakdown bool   `mapstructure:"breakdown"`
	Width     int    `mapstructure:"width"`
	Log       Log    `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Log configures the zap logger.
type Log struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// SearchPaths are the rc files tried, in order, when no explicit config path
// is given.
var SearchPaths = []string{".healthcheckrc.yaml", ".healthcheckrc.yml", ".healthcheckrc.json", ".healthcheckrc.toml"}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"bank":      "bank",
	"format":    "format",
	"color":     "color",
	"breakdown": "breakdown",
	"width":     "width",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// Load resolves the configuration. path names an explicit config file; when
// empty, SearchPaths are tried and a missing file is not an error. flags may
// be nil; only flags the user changed override file and env values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("bank", "xero")
	v.SetDefault("format", "console")
	v.SetDefault("color", true)
	v.SetDefault("breakdown", false)
	v.SetDefault("width", 72)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	file, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", file, err)
		}
	}

	v.SetEnvPrefix("HEALTHCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config.Load: bind --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}
	cfg.File = file

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

func findConfigFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config.Load: %w", err)
		}
		return path, nil
	}
	for _, p := range SearchPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config.Load: %w", err)
		}
	}
	return "", nil
}

func validate(cfg *Config) error {
	switch cfg.Format {
	case "console", "json", "md":
	default:
		return fmt.Errorf("invalid format %q: must be console, json, or md", cfg.Format)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be console or json", cfg.Log.Format)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("invalid width %d: must be >= 0", cfg.Width)
	}
	if cfg.Bank == "" {
		return errors.New("bank must not be empty")
	}
	return nil
}
