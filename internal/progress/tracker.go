package progress

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

// DefaultStaleAttempt is how long an "attempting" record keeps blocking
// retries. A process that dies mid-action leaves its badges stuck in
// attempting; once the record is older than this window the tracker treats
// it as retryable again.
const DefaultStaleAttempt = time.Hour

// Tracker layers the retry policy over the Store. It owns the in-memory
// ledger and persists every mutation immediately: this runs at
// human-interactive cadence, so crash-safety beats write throughput.
type Tracker struct {
	store      *Store
	registry   *registry.Registry
	ledger     map[string]Record
	staleAfter time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewTracker loads the ledger from the store and returns a tracker over it.
func NewTracker(store *Store, reg *registry.Registry, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ledger, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Tracker{
		store:      store,
		registry:   reg,
		ledger:     ledger,
		staleAfter: DefaultStaleAttempt,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// SetStaleAttemptWindow overrides how long attempting records block retries.
// Zero disables the staleness escape hatch entirely.
func (t *Tracker) SetStaleAttemptWindow(d time.Duration) {
	t.staleAfter = d
}

// SetStatus records a new status for a badge and persists the ledger. The id
// must exist in the registry and the status must be one of the five allowed
// values.
func (t *Tracker) SetStatus(id string, status Status, details string) error {
	if !t.registry.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownBadge, id)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	t.ledger[id] = Record{Status: status, Details: details, Updated: t.now()}
	if err := t.store.Save(t.ledger); err != nil {
		return fmt.Errorf("persist status for %q: %w", id, err)
	}

	t.logger.Debug("badge status updated",
		zap.String("badge", id),
		zap.String("status", string(status)),
		zap.String("details", details))
	return nil
}

// Get returns the record for a badge id, if one exists.
func (t *Tracker) Get(id string) (Record, bool) {
	rec, ok := t.ledger[id]
	return rec, ok
}

// GetStatus returns the current status for a badge, defaulting to pending
// for registry badges that have no record yet.
func (t *Tracker) GetStatus(id string) Status {
	if rec, ok := t.ledger[id]; ok {
		return rec.Status
	}
	return StatusPending
}

// IsEarned reports whether the badge is confirmed earned.
func (t *Tracker) IsEarned(id string) bool {
	return t.GetStatus(id) == StatusEarned
}

// ShouldAttempt is the retry policy. Pending and failed badges are always
// eligible: there is no backoff and no retry budget, because the remote
// service's own rate limiting is the only throttle we need. Earned badges
// are terminal. Skipped badges wait for a human to clear the precondition.
// Attempting badges are presumed in flight elsewhere, unless the record has
// gone stale (see SetStaleAttemptWindow).
//
// Callers must filter non-automatable badges through the registry before
// consulting this policy.
func (t *Tracker) ShouldAttempt(id string) bool {
	rec, ok := t.ledger[id]
	if !ok {
		return t.registry.Has(id)
	}
	switch rec.Status {
	case StatusPending, StatusFailed:
		return true
	case StatusAttempting:
		return t.staleAfter > 0 && t.now().Sub(rec.Updated) > t.staleAfter
	default: // earned, skipped
		return false
	}
}

// Ledger returns a copy of the in-memory ledger for read-only rendering.
func (t *Tracker) Ledger() map[string]Record {
	out := make(map[string]Record, len(t.ledger))
	for k, v := range t.ledger {
		out[k] = v
	}
	return out
}

// PhaseCounts is the per-phase status breakdown used by the summary view.
type PhaseCounts struct {
	Phase   int
	Total   int
	Earned  int
	Failed  int
	Skipped int
	Pending int
	InStep  int // attempting
}

// Summary counts registry badges by status, grouped by phase. Read-only.
func (t *Tracker) Summary() []PhaseCounts {
	out := make([]PhaseCounts, 0, registry.PhaseMax)
	for p := registry.PhaseMin; p <= registry.PhaseMax; p++ {
		pc := PhaseCounts{Phase: p}
		for _, b := range t.registry.ByPhase(p) {
			pc.Total++
			switch t.GetStatus(b.ID) {
			case StatusEarned:
				pc.Earned++
			case StatusFailed:
				pc.Failed++
			case StatusSkipped:
				pc.Skipped++
			case StatusAttempting:
				pc.InStep++
			default:
				pc.Pending++
			}
		}
		out = append(out, pc)
	}
	return out
}
