// Package config loads the logging setup from a configuration file (YAML,
// TOML or JSON through viper), validates it and builds the plog config and
// printers it describes.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	ENV_PREFIX  = "PLOG"
	CONFIG_NAME = "plog"
)

// Config represents the complete logging configuration
type Config struct {
	// Level is the threshold: ALL, NONE or a level name (VERBOSE, D, info...)
	Level string `mapstructure:"level"`
	// Tag is used for entries logged without one
	Tag string `mapstructure:"tag"`
	// Thread adds the goroutine id to every entry
	Thread bool `mapstructure:"thread"`
	// Border draws a box around thread info, stack trace and message
	Border bool `mapstructure:"border"`
	// BlockedTags are dropped before printing
	BlockedTags []string      `mapstructure:"blocked_tags"`
	Stack       StackConfig   `mapstructure:"stack"`
	Console     ConsoleConfig `mapstructure:"console"`
	File        FileConfig    `mapstructure:"file"`
	Rolling     RollingConfig `mapstructure:"rolling"`
	Crash       CrashConfig   `mapstructure:"crash"`
}

// StackConfig controls call stack capture
type StackConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Origin crops frames of a wrapper package (function name prefix)
	Origin string `mapstructure:"origin"`
	// Depth limits the frames kept, 0 keeps all
	Depth int `mapstructure:"depth"`
}

// ConsoleConfig controls the stdout printer
type ConsoleConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Color is "auto" (terminal only), "always" or "never"
	Color string `mapstructure:"color"`
}

// FileConfig controls the asynchronous file printer
type FileConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	// Naming is "changeless" (one file called Name), "level" or "date"
	Naming     string `mapstructure:"naming"`
	Name       string `mapstructure:"name"`
	DateLayout string `mapstructure:"date_layout"`
	// MaxSize triggers a backup ("1MiB", "512k"); empty never backs up
	MaxSize       string `mapstructure:"max_size"`
	RetentionDays int    `mapstructure:"retention_days"`
	MaxBackups    int    `mapstructure:"max_backups"`
}

// RollingConfig controls the lumberjack printer
type RollingConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// CrashConfig controls crash reports
type CrashConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Dir           string `mapstructure:"dir"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// Default returns the configuration used when nothing is configured
func Default() *Config {
	return &Config{
		Level: "ALL",
		Tag:   "PLOG",
		Console: ConsoleConfig{
			Enabled: true,
			Color:   "auto",
		},
		File: FileConfig{
			Dir:        "logs",
			Naming:     NAMING_CHANGELESS,
			Name:       "log",
			DateLayout: "2006-01-02",
			MaxSize:    "1MiB",
		},
		Rolling: RollingConfig{
			Filename:   filepath.Join("logs", "plog.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Crash: CrashConfig{
			Dir:           filepath.Join("logs", "crash"),
			RetentionDays: 7,
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("level", defaults.Level)
	v.SetDefault("tag", defaults.Tag)
	v.SetDefault("thread", defaults.Thread)
	v.SetDefault("border", defaults.Border)
	v.SetDefault("blocked_tags", defaults.BlockedTags)

	v.SetDefault("stack.enabled", defaults.Stack.Enabled)
	v.SetDefault("stack.origin", defaults.Stack.Origin)
	v.SetDefault("stack.depth", defaults.Stack.Depth)

	v.SetDefault("console.enabled", defaults.Console.Enabled)
	v.SetDefault("console.color", defaults.Console.Color)

	v.SetDefault("file.enabled", defaults.File.Enabled)
	v.SetDefault("file.dir", defaults.File.Dir)
	v.SetDefault("file.naming", defaults.File.Naming)
	v.SetDefault("file.name", defaults.File.Name)
	v.SetDefault("file.date_layout", defaults.File.DateLayout)
	v.SetDefault("file.max_size", defaults.File.MaxSize)
	v.SetDefault("file.retention_days", defaults.File.RetentionDays)
	v.SetDefault("file.max_backups", defaults.File.MaxBackups)

	v.SetDefault("rolling.enabled", defaults.Rolling.Enabled)
	v.SetDefault("rolling.filename", defaults.Rolling.Filename)
	v.SetDefault("rolling.max_size_mb", defaults.Rolling.MaxSizeMB)
	v.SetDefault("rolling.max_backups", defaults.Rolling.MaxBackups)
	v.SetDefault("rolling.max_age_days", defaults.Rolling.MaxAgeDays)
	v.SetDefault("rolling.compress", defaults.Rolling.Compress)

	v.SetDefault("crash.enabled", defaults.Crash.Enabled)
	v.SetDefault("crash.dir", defaults.Crash.Dir)
	v.SetDefault("crash.retention_days", defaults.Crash.RetentionDays)
}

// NewViper returns a viper instance with defaults, PLOG_* environment
// overrides (PLOG_FILE_DIR for file.dir) and the config file read: cfgFile
// when given, otherwise plog.{yaml,toml,json} from the working directory or
// ConfigDir(). A missing config file is not an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(CONFIG_NAME)
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return v, err
		}
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, CONFIG_NAME)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + CONFIG_NAME
	}
	return filepath.Join(home, ".config", CONFIG_NAME)
}
