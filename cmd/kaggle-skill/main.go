package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nurfaiz0909/kaggle-skill/internal/browser"
	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/kaggle"
	"github.com/nurfaiz0909/kaggle-skill/internal/phases"
	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
	"github.com/nurfaiz0909/kaggle-skill/internal/ui"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	progressFile string
	cliTimeout   time.Duration

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kaggle-skill",
	Short: "Automated Kaggle badge collector",
	Long: `kaggle-skill earns Kaggle badges on your behalf, phase by phase.

It shells out to the official kaggle CLI for everything the public API
covers (notebooks, datasets, models, competition submissions) and can drive
a signed-in Chrome for the community actions that have no API.

Progress lives in a local JSON ledger; every run resumes where the last
one stopped and never repeats work for badges already earned.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles the wired components every subcommand starts from.
type app struct {
	cfg     config.Config
	reg     *registry.Registry
	tracker *progress.Tracker
	cli     *kaggle.Runner
	creds   kaggle.Credentials
	styles  ui.Styles
}

// buildApp loads configuration and opens the ledger.
func buildApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if progressFile != "" {
		cfg.ProgressFile = progressFile
	}
	if cliTimeout > 0 {
		cfg.CLITimeout = cliTimeout
	}

	reg := registry.Default()
	store := progress.NewStore(cfg.ProgressFile, reg, logger)
	tracker, err := progress.NewTracker(store, reg, logger)
	if err != nil {
		return nil, err
	}
	tracker.SetStaleAttemptWindow(cfg.StaleAttempt)

	return &app{
		cfg:     cfg,
		reg:     reg,
		tracker: tracker,
		cli:     kaggle.NewRunner(cfg.APIDelay, cfg.CLITimeout, logger),
		creds:   kaggle.ResolveCredentials(logger),
		styles:  ui.DefaultStyles(),
	}, nil
}

// phaseEnv wires the unit environment for a live run.
func (a *app) phaseEnv() *phases.Env {
	env := &phases.Env{
		CLI:      a.cli,
		Cfg:      a.cfg,
		Username: a.creds.Username,
		Logger:   logger,
	}
	poller := phases.NewPoller(a.cli, a.cfg.Poll.Interval, a.cfg.Poll.Timeout, logger)
	env.WaitForKernel = poller.Wait

	if a.cfg.Browser.DebuggerURL != "" {
		driver := browser.NewDriver(browser.Config{
			DebuggerURL:       a.cfg.Browser.DebuggerURL,
			Headless:          a.cfg.Browser.Headless,
			NavigationTimeout: a.cfg.Browser.NavigationTimeout,
		}, logger)
		env.Browser = &browserAdapter{driver: driver}
	}
	return env
}

// browserAdapter bridges the rod driver into the unit environment.
type browserAdapter struct {
	driver *browser.Driver
}

func (b *browserAdapter) Connect(ctx context.Context) error { return b.driver.Connect(ctx) }
func (b *browserAdapter) Upvote(url string) error           { return b.driver.Upvote(url) }
func (b *browserAdapter) Follow(url string) error           { return b.driver.Follow(url) }

func (b *browserAdapter) PostDiscussion(forumURL, title, body string) error {
	return b.driver.PostDiscussion(forumURL, title, body)
}

func (b *browserAdapter) CompleteProfile(editURL string, fields phases.BrowserProfile) error {
	return b.driver.CompleteProfile(editURL, browser.ProfileFields{
		Occupation:   fields.Occupation,
		Organization: fields.Organization,
		Location:     fields.Location,
		Bio:          fields.Bio,
	})
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .kaggle-skill.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&progressFile, "progress-file", "", "Badge ledger location (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&cliTimeout, "timeout", 0, "Per-invocation kaggle CLI timeout (overrides config)")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(credsCmd)
	rootCmd.AddCommand(competitionsCmd)
	rootCmd.AddCommand(hubCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
