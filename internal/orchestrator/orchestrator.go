// Package orchestrator ties the collector together: it resolves which
// phases to run, gates on credentials, and drives the phase runner while
// containing per-phase failures.
package orchestrator

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/phases"
	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

// ErrNoCredentials aborts a run before anything remote happens.
var ErrNoCredentials = fmt.Errorf("no usable credentials found; run `kaggle-skill creds` for details")

// ResolvePhases parses the --phase argument into an ordered phase list.
func ResolvePhases(arg string) ([]int, error) {
	if arg == "" || arg == "all" {
		all := make([]int, 0, registry.PhaseMax)
		for p := registry.PhaseMin; p <= registry.PhaseMax; p++ {
			all = append(all, p)
		}
		return all, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < registry.PhaseMin || n > registry.PhaseMax {
		return nil, fmt.Errorf("invalid phase %q: want %d-%d or \"all\"",
			arg, registry.PhaseMin, registry.PhaseMax)
	}
	return []int{n}, nil
}

// CredentialChecker reports whether the account can authenticate.
type CredentialChecker func() bool

// Orchestrator runs collection across phases.
type Orchestrator struct {
	runner   *phases.Runner
	tracker  *progress.Tracker
	hasCreds CredentialChecker
	logger   *zap.Logger
}

// New wires an orchestrator.
func New(runner *phases.Runner, tracker *progress.Tracker, hasCreds CredentialChecker, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{runner: runner, tracker: tracker, hasCreds: hasCreds, logger: logger}
}

// PlannedUnit is one entry of a dry-run preview. BadgeIDs holds only the
// badges a live run would move, never a unit's already-settled ones.
type PlannedUnit struct {
	Phase    int
	Name     string
	BadgeIDs []string
}

// Plan lists the units a live run over these phases would attempt, using
// the exact filter the live run uses. It performs no remote calls and no
// ledger writes.
func (o *Orchestrator) Plan(phaseList []int) []PlannedUnit {
	var plan []PlannedUnit
	for _, phase := range phaseList {
		for _, u := range o.runner.Preview(phase) {
			plan = append(plan, PlannedUnit{Phase: phase, Name: u.Name, BadgeIDs: u.BadgeIDs})
		}
	}
	return plan
}

// Collect runs the listed phases in order. A phase blowing up is logged and
// the next phase still runs; badge failures never turn into an error. The
// only error cases are the credential gate and ledger persistence.
func (o *Orchestrator) Collect(ctx context.Context, phaseList []int) ([]phases.Stats, error) {
	if !o.hasCreds() {
		return nil, ErrNoCredentials
	}

	var all []phases.Stats
	for _, phase := range phaseList {
		stats, err := o.runPhaseContained(ctx, phase)
		all = append(all, stats)
		if err != nil {
			if ctx.Err() != nil {
				return all, err
			}
			o.logger.Error("phase aborted", zap.Int("phase", phase), zap.Error(err))
			continue
		}
		o.logger.Info("phase finished",
			zap.Int("phase", phase),
			zap.Int("attempted", stats.Attempted),
			zap.Int("earned", stats.Earned),
			zap.Int("failed", stats.Failed),
			zap.Int("skipped", stats.Skipped))
	}
	return all, nil
}

func (o *Orchestrator) runPhaseContained(ctx context.Context, phase int) (stats phases.Stats, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("phase %d panicked: %v", phase, rec)
		}
	}()
	return o.runner.RunPhase(ctx, phase)
}

// Totals sums phase stats for the final report.
func Totals(all []phases.Stats) phases.Stats {
	var t phases.Stats
	for _, s := range all {
		t.Attempted += s.Attempted
		t.Earned += s.Earned
		t.Failed += s.Failed
		t.Skipped += s.Skipped
	}
	return t
}
