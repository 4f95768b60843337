// Package config loads the contentkit configuration file with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/contentkit/internal/cerrors"
)

// Config is the application configuration.
type Config struct {
	// ContentRoot is the directory holding the content tree.
	ContentRoot string `yaml:"content_root"`

	Index IndexConfig `yaml:"index"`
	Lint  LintConfig  `yaml:"lint"`
	Watch WatchConfig `yaml:"watch"`
}

// IndexConfig configures the SQLite document index.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// LintConfig carries the lint defaults the CLI flags can override.
type LintConfig struct {
	Quiet  bool   `yaml:"quiet"`
	Format string `yaml:"format"`
}

// WatchConfig configures the watch daemon.
type WatchConfig struct {
	// Debounce is how long to wait after the last filesystem event before
	// re-validating.
	Debounce Duration `yaml:"debounce"`

	// FullRevalidateEvery is the schedule for complete re-validation runs
	// independent of filesystem events. Zero disables the schedule.
	FullRevalidateEvery Duration `yaml:"full_revalidate_every"`

	// MetricsListen is the address for the prometheus endpoint ("" disables it).
	MetricsListen string `yaml:"metrics_listen"`
}

// Duration decodes from Go duration strings ("2s", "30m") in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads configuration from the given file. A .env file next to the
// working directory is loaded first; process environment wins over both.
func Load(configPath string) (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, cerrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, cerrors.Wrap(err, cerrors.CategoryConfig, cerrors.SeverityFatal, "parse configuration")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when keys are absent.
func Default() *Config {
	return &Config{
		ContentRoot: "./content",
		Index: IndexConfig{
			Path: "./contentkit.db",
		},
		Lint: LintConfig{
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce:            Duration(2 * time.Second),
			FullRevalidateEvery: Duration(time.Hour),
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CONTENTKIT_CONTENT_ROOT"); v != "" {
		cfg.ContentRoot = v
	}
	if v := os.Getenv("CONTENTKIT_INDEX_PATH"); v != "" {
		cfg.Index.Path = v
	}
	if v := os.Getenv("CONTENTKIT_METRICS_LISTEN"); v != "" {
		cfg.Watch.MetricsListen = v
	}
}

// Validate checks the configuration for values the commands cannot work with.
func (c *Config) Validate() error {
	if c.ContentRoot == "" {
		return cerrors.ConfigInvalid("content_root", "must not be empty")
	}
	if c.Index.Path == "" {
		return cerrors.ConfigInvalid("index.path", "must not be empty")
	}
	switch c.Lint.Format {
	case "", "text", "json":
	default:
		return cerrors.ConfigInvalid("lint.format", fmt.Sprintf("unknown format %q", c.Lint.Format))
	}
	if c.Watch.Debounce < 0 {
		return cerrors.ConfigInvalid("watch.debounce", "must not be negative")
	}
	if c.Watch.FullRevalidateEvery < 0 {
		return cerrors.ConfigInvalid("watch.full_revalidate_every", "must not be negative")
	}
	return nil
}

// WriteDefault writes a starter configuration file. It refuses to overwrite
// unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return cerrors.ConfigInvalid("path", fmt.Sprintf("%s already exists (use --force to overwrite)", path))
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default configuration: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
