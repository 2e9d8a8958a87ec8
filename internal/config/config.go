// Package config holds the collector configuration. Configuration is an
// explicit value constructed once in main and passed to every component;
// there is no package-level state.
//
// Values come from three layers, later layers winning:
//
//  1. compiled-in defaults
//  2. an optional YAML file (.kaggle-skill.yaml)
//  3. KAGGLE_SKILL_* environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory when
// no explicit path is given.
const DefaultFileName = ".kaggle-skill.yaml"

// ResourcePrefix marks every remote resource the collector creates so a
// human can find and clean them up later.
const ResourcePrefix = "badge-collector-"

// Config is the full collector configuration.
type Config struct {
	// ProgressFile is the badge ledger location, the collector's only
	// durable state.
	ProgressFile string `yaml:"progress_file"`

	// TempDir is where upload staging directories are created.
	TempDir string `yaml:"temp_dir"`

	// APIDelay is the fixed pause after every remote CLI invocation.
	APIDelay time.Duration `yaml:"api_delay"`

	// CLITimeout bounds a single kaggle CLI invocation.
	CLITimeout time.Duration `yaml:"cli_timeout"`

	// StaleAttempt is how long an attempting record blocks retries before
	// it is presumed dead. Zero disables the escape hatch.
	StaleAttempt time.Duration `yaml:"stale_attempt"`

	Poll    PollConfig    `yaml:"poll"`
	Browser BrowserConfig `yaml:"browser"`
}

// PollConfig governs waiting for remote kernel execution.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
}

// BrowserConfig governs the phase 4 browser driver.
type BrowserConfig struct {
	// DebuggerURL attaches to an already running, logged-in Chrome via
	// the DevTools protocol. When empty a fresh instance is launched,
	// which will not be signed in to Kaggle.
	DebuggerURL string `yaml:"debugger_url"`

	Headless          bool          `yaml:"headless"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		ProgressFile: "badge-progress.json",
		TempDir:      "badge-tmp",
		APIDelay:     5 * time.Second,
		CLITimeout:   2 * time.Minute,
		StaleAttempt: time.Hour,
		Poll: PollConfig{
			Interval: 30 * time.Second,
			Timeout:  10 * time.Minute,
		},
		Browser: BrowserConfig{
			Headless:          true,
			NavigationTimeout: 30 * time.Second,
		},
	}
}

// Load builds the effective configuration. path may be empty, in which case
// DefaultFileName is used if present; a missing file is not an error, a
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvOverrides lets KAGGLE_SKILL_* variables win over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KAGGLE_SKILL_PROGRESS_FILE"); v != "" {
		cfg.ProgressFile = v
	}
	if v := os.Getenv("KAGGLE_SKILL_TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	if d, ok := envDuration("KAGGLE_SKILL_API_DELAY"); ok {
		cfg.APIDelay = d
	}
	if d, ok := envDuration("KAGGLE_SKILL_CLI_TIMEOUT"); ok {
		cfg.CLITimeout = d
	}
	if d, ok := envDuration("KAGGLE_SKILL_POLL_INTERVAL"); ok {
		cfg.Poll.Interval = d
	}
	if d, ok := envDuration("KAGGLE_SKILL_POLL_TIMEOUT"); ok {
		cfg.Poll.Timeout = d
	}
	if v := os.Getenv("KAGGLE_SKILL_BROWSER_URL"); v != "" {
		cfg.Browser.DebuggerURL = v
	}
}

func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}

// Validate rejects configurations the collector cannot run with.
func (c Config) Validate() error {
	if c.ProgressFile == "" {
		return fmt.Errorf("config: progress_file must not be empty")
	}
	if c.APIDelay < 0 {
		return fmt.Errorf("config: api_delay must not be negative")
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("config: poll.interval must be positive")
	}
	if c.Poll.Timeout < c.Poll.Interval {
		return fmt.Errorf("config: poll.timeout must be at least poll.interval")
	}
	return nil
}

// StagingDir creates a fresh staging directory under TempDir for one upload.
func (c Config) StagingDir(suffix string) (string, error) {
	if err := os.MkdirAll(c.TempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp root: %w", err)
	}
	dir, err := os.MkdirTemp(c.TempDir, ResourcePrefix+"*"+suffix)
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return filepath.Clean(dir), nil
}
