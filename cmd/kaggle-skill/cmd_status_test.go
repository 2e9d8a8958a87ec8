package main

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
	"github.com/nurfaiz0909/kaggle-skill/internal/ui"
)

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	goleak.VerifyTestMain(m)
}

func testApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Default()
	cfg.ProgressFile = filepath.Join(t.TempDir(), "badge-progress.json")

	reg := registry.Default()
	store := progress.NewStore(cfg.ProgressFile, reg, logger)
	tracker, err := progress.NewTracker(store, reg, logger)
	require.NoError(t, err)

	return &app{cfg: cfg, reg: reg, tracker: tracker, styles: ui.DefaultStyles()}
}

func TestWatchRerendersOnLedgerRewrite(t *testing.T) {
	a := testApp(t)

	var renders atomic.Int32
	stop := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- watchLedger(a, func(*progress.Tracker) { renders.Add(1) }, stop)
	}()

	// Give the watcher a moment to install, then rewrite the ledger the
	// way the store does: write-and-rename into place.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, a.tracker.SetStatus("python_coder", progress.StatusEarned, ""))

	deadline := time.After(3 * time.Second)
	for renders.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("watcher never re-rendered after a ledger rewrite")
		case <-time.After(10 * time.Millisecond):
		}
	}

	close(stop)
	require.NoError(t, <-done)
}

func TestReloadTrackerSeesExternalWrites(t *testing.T) {
	a := testApp(t)
	require.NoError(t, a.tracker.SetStatus("r_coder", progress.StatusEarned, "notebook=x"))

	fresh, err := a.reloadTracker()
	require.NoError(t, err)
	assert.Equal(t, progress.StatusEarned, fresh.GetStatus("r_coder"))
}
