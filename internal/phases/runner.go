package phases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

// Stats tallies one phase run.
type Stats struct {
	Phase     int
	Attempted int
	Earned    int
	Failed    int
	Skipped   int
}

// Runner executes the units of one phase against the ledger. Units run
// strictly one after another; the CLI rate limit makes parallelism useless
// and interleaved output unreadable.
type Runner struct {
	registry *registry.Registry
	tracker  *progress.Tracker
	env      *Env
	units    map[int][]Unit
	logger   *zap.Logger
}

// NewRunner wires a phase runner.
func NewRunner(reg *registry.Registry, tracker *progress.Tracker, env *Env, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		registry: reg,
		tracker:  tracker,
		env:      env,
		units:    Catalog(),
		logger:   logger,
	}
}

// actionable returns the subset of a unit's badges worth attempting: known,
// automatable, and not already settled. The same filter serves live runs
// and dry runs, so the preview always matches what a live run would do.
func (r *Runner) actionable(u Unit) []string {
	var ids []string
	for _, id := range u.BadgeIDs {
		def, ok := r.registry.ByID(id)
		if !ok || !def.Automatable {
			continue
		}
		if r.tracker.ShouldAttempt(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// PlannedUnit is one unit a live run would attempt, carrying only the
// badges the attempt would actually move.
type PlannedUnit struct {
	Name     string
	BadgeIDs []string
}

// Preview lists the units a live run of this phase would attempt. Each
// entry's BadgeIDs is the actionable subset, so a unit whose badges are
// partially settled previews exactly the badges the live run would touch.
func (r *Runner) Preview(phase int) []PlannedUnit {
	var out []PlannedUnit
	for _, u := range r.units[phase] {
		if ids := r.actionable(u); len(ids) > 0 {
			out = append(out, PlannedUnit{Name: u.Name, BadgeIDs: ids})
		}
	}
	return out
}

// RunPhase executes every actionable unit of a phase. A unit failure is
// recorded and the phase moves on; only ledger persistence errors abort.
func (r *Runner) RunPhase(ctx context.Context, phase int) (Stats, error) {
	stats := Stats{Phase: phase}
	units, ok := r.units[phase]
	if !ok {
		return stats, fmt.Errorf("no such phase: %d", phase)
	}

	for _, unit := range units {
		ids := r.actionable(unit)
		if len(ids) == 0 {
			r.logger.Debug("unit has nothing to do", zap.String("unit", unit.Name))
			continue
		}
		stats.Attempted++

		if err := r.setAll(ids, progress.StatusAttempting, "unit="+unit.Name); err != nil {
			return stats, err
		}

		details, err := r.runContained(ctx, unit)
		switch {
		case err == nil:
			if err := r.setAll(ids, progress.StatusEarned, details); err != nil {
				return stats, err
			}
			stats.Earned += len(ids)
			r.logger.Info("unit earned badges",
				zap.String("unit", unit.Name), zap.Strings("badges", ids))
		case errors.Is(err, ErrSkip):
			if err := r.setAll(ids, progress.StatusSkipped, err.Error()); err != nil {
				return stats, err
			}
			stats.Skipped += len(ids)
			r.logger.Info("unit skipped",
				zap.String("unit", unit.Name), zap.String("reason", err.Error()))
		default:
			if err := r.setAll(ids, progress.StatusFailed, err.Error()); err != nil {
				return stats, err
			}
			stats.Failed += len(ids)
			r.logger.Warn("unit failed",
				zap.String("unit", unit.Name), zap.Error(err))
		}

		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
	}
	return stats, nil
}

// runContained shields the runner from a panicking unit.
func (r *Runner) runContained(ctx context.Context, unit Unit) (details string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unit %s panicked: %v", unit.Name, rec)
		}
	}()
	return unit.Run(ctx, r.env)
}

// setAll moves a unit's badge set through the ledger as one group.
func (r *Runner) setAll(ids []string, status progress.Status, details string) error {
	for _, id := range ids {
		if err := r.tracker.SetStatus(id, status, details); err != nil {
			return fmt.Errorf("record %s=%s: %w", id, status, err)
		}
	}
	return nil
}
