// Package config loads spectree settings from .spectree.{yaml,json,toml},
// SPECTREE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name without extension.
	FileName = ".spectree"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SPECTREE"
	// DefaultCommand runs a spec; <path> is replaced by its path relative to
	// the execution root.
	DefaultCommand = "npx jest <path> --colors"
	// DefaultSeparator delimits relative spec paths.
	DefaultSeparator = "/"
)

// Override replaces the runner command for specs matching Pattern.
type Override struct {
	Pattern string `mapstructure:"pattern"`
	Command string `mapstructure:"command"`
}

// Runner configures how a selected spec is executed.
type Runner struct {
	Command   string     `mapstructure:"command"`
	Overrides []Override `mapstructure:"overrides"`
}

// Log configures the application logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Config is the resolved configuration.
type Config struct {
	Separator   string   `mapstructure:"separator"`
	Search      string   `mapstructure:"search"`
	Collapsed   []string `mapstructure:"collapsed"`
	ChangedOnly bool     `mapstructure:"changed_only"`
	Exclude     []string `mapstructure:"exclude"`
	Runner      Runner   `mapstructure:"runner"`
	Log         Log      `mapstructure:"log"`

	// Path is the config file that was read, if any.
	Path string `mapstructure:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Separator: DefaultSeparator,
		Runner:    Runner{Command: DefaultCommand},
		Log:       Log{Level: "info"},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"separator": "separator",
	"search":    "search",
	"collapsed": "collapsed",
	"changed":   "changed_only",
	"exclude":   "exclude",
	"command":   "runner.command",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// Root is searched for a config file when File is empty.
	Root string
	// File is an explicit config file; it must exist.
	File string
	// Flags, when set, override file and environment values for flags the
	// user changed.
	Flags *pflag.FlagSet
}

// Load resolves the configuration. A missing config file is not an error.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("separator", defaults.Separator)
	v.SetDefault("search", defaults.Search)
	v.SetDefault("collapsed", []string{})
	v.SetDefault("changed_only", defaults.ChangedOnly)
	v.SetDefault("exclude", []string{})
	v.SetDefault("runner.command", defaults.Runner.Command)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		if opts.Root != "" {
			v.AddConfigPath(opts.Root)
		} else {
			v.AddConfigPath(".")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = v.ConfigFileUsed()

	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	if strings.TrimSpace(cfg.Runner.Command) == "" {
		cfg.Runner.Command = DefaultCommand
	}
	return cfg, nil
}
