package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/ui"
)

var statusWatch bool

// statusCmd renders the badge ledger.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the badge ledger grouped by phase",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Re-render whenever the ledger changes")
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	render := func(tracker *progress.Tracker) {
		fmt.Print(ui.StatusTable(a.reg, tracker, a.styles))
	}
	render(a.tracker)

	if !statusWatch {
		return nil
	}
	return watchLedger(a, render, nil)
}

// watchLedger re-renders the table every time another process rewrites the
// ledger, until interrupted or stop is closed.
func watchLedger(a *app, render func(*progress.Tracker), stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: the ledger is replaced by rename
	// on every save, which drops a watch set on the file itself.
	dir := filepath.Dir(a.cfg.ProgressFile)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	target := filepath.Clean(a.cfg.ProgressFile)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			tracker, err := a.reloadTracker()
			if err != nil {
				logger.Warn("reload ledger", zap.Error(err))
				continue
			}
			fmt.Print("\033[H\033[2J")
			render(tracker)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-sigCh:
			return nil
		case <-stop:
			return nil
		}
	}
}

func (a *app) reloadTracker() (*progress.Tracker, error) {
	store := progress.NewStore(a.cfg.ProgressFile, a.reg, logger)
	return progress.NewTracker(store, a.reg, logger)
}
