// Package config provides configuration management for l10nify.
//
// Configuration is loaded from, highest priority first:
// 1. Command-line flags and the positional root argument
// 2. Environment variables (L10NIFY_ prefix, e.g. L10NIFY_ROOT, L10NIFY_LOG_LEVEL)
// 3. l10nify.yaml (optional, or the file named by --config)
// 4. Default values
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "l10nify.io/l10nify/internal/pkg/errors"
	"l10nify.io/l10nify/internal/substitute"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "L10NIFY"

// Config is the root configuration structure.
type Config struct {
	// Root is the directory scanned for target files.
	Root string `mapstructure:"root"`
	// Resource is the resource file path, relative to Root unless absolute.
	Resource  string   `mapstructure:"resource"`
	Extension string   `mapstructure:"extension"`
	Accessor  string   `mapstructure:"accessor"`
	Exclude   []string `mapstructure:"exclude"`
	DryRun    bool     `mapstructure:"dry_run"`
	// Check implies DryRun and fails the run when any literal would change.
	Check bool `mapstructure:"check"`
	// Report is an optional YAML report path. Empty disables the report.
	Report string `mapstructure:"report"`

	Worker WorkerConfig `mapstructure:"worker"`
	Log    LogConfig    `mapstructure:"log"`
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// ResourcePath returns the resource file path resolved against Root.
func (c *Config) ResourcePath() string {
	if filepath.IsAbs(c.Resource) {
		return c.Resource
	}
	return filepath.Join(c.Root, c.Resource)
}

// flag name -> config key
var flagKeys = map[string]string{
	"root":       "root",
	"resource":   "resource",
	"extension":  "extension",
	"accessor":   "accessor",
	"exclude":    "exclude",
	"dry-run":    "dry_run",
	"check":      "check",
	"report":     "report",
	"workers":    "worker.pool_size",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// NewFlagSet returns the command-line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.String("config", "", "config file (default ./l10nify.yaml or ./config/l10nify.yaml)")
	fs.String("root", "", "directory to scan (may also be given as the first argument)")
	fs.String("resource", "l10n/app_en.arb", "resource file, relative to root unless absolute")
	fs.String("extension", ".dart", "suffix of files to rewrite")
	fs.String("accessor", substitute.DefaultAccessor, "accessor template; "+substitute.KeyPlaceholder+" is replaced by the key")
	fs.StringSlice("exclude", nil, "glob of root-relative paths to skip (repeatable)")
	fs.Bool("dry-run", false, "report changes without writing files")
	fs.Bool("check", false, "fail if any literal would be rewritten; writes nothing")
	fs.String("report", "", "write a YAML run report to this path")
	fs.Int("workers", 1, "number of files processed concurrently; 1 processes them one at a time")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.String("log-format", "console", "log format: console or json")
	return fs
}

// Load parses args and merges flags, environment, config file and defaults.
// It returns pflag.ErrHelp when -h or --help was requested.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("l10nify")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "parse flags")
	}
	if fs.NArg() > 1 {
		return nil, apperrors.ErrConfigInvalidf(fmt.Sprintf("expected at most one root argument, got %d", fs.NArg()))
	}

	v := viper.New()
	v.SetConfigType("yaml")
	explicitFile, _ := fs.GetString("config")
	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName("l10nify")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Maps nested config: worker.pool_size → L10NIFY_WORKER_POOL_SIZE
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	if fs.NArg() == 1 {
		v.Set("root", fs.Arg(0))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &notFound) {
			return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "read config")
		}
		// Config file is optional, use defaults, env vars and flags
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeConfigInvalid, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks for configuration errors that would make a run meaningless.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return apperrors.ErrConfigInvalidf("root must not be empty")
	}
	if c.Resource == "" {
		return apperrors.ErrConfigInvalidf("resource must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return apperrors.ErrConfigInvalidf(fmt.Sprintf("extension %q must start with a dot", c.Extension))
	}
	if !strings.Contains(c.Accessor, substitute.KeyPlaceholder) {
		return apperrors.ErrConfigInvalidf(fmt.Sprintf("accessor %q must contain %s", c.Accessor, substitute.KeyPlaceholder))
	}
	if c.Worker.PoolSize < 1 {
		return apperrors.ErrConfigInvalidf(fmt.Sprintf("worker.pool_size must be at least 1, got %d", c.Worker.PoolSize))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return apperrors.ErrConfigInvalidf(fmt.Sprintf("log.format %q must be json or console", c.Log.Format))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Target tree
	v.SetDefault("resource", "l10n/app_en.arb")
	v.SetDefault("extension", ".dart")
	v.SetDefault("accessor", substitute.DefaultAccessor)
	v.SetDefault("exclude", []string{})
	v.SetDefault("dry_run", false)
	v.SetDefault("check", false)
	v.SetDefault("report", "")

	// Worker Pool
	v.SetDefault("worker.pool_size", 1)

	// Log
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}
