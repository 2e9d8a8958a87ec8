// Package phases defines the badge-earning work units and the runner that
// drives them. A unit is the smallest attemptable action; one action can
// earn several badges at once, and those badges always move through the
// ledger together.
package phases

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/kaggle"
)

// ErrSkip marks a unit that cannot run in the current environment, for
// example when there is no public notebook to fork. Skipped badges are not
// retried on later runs.
var ErrSkip = errors.New("unit skipped")

// Skipf wraps ErrSkip with a reason that lands in the ledger details.
func Skipf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrSkip)...)
}

// CLI is the slice of the kaggle client the units use.
type CLI interface {
	Run(ctx context.Context, args ...string) (kaggle.Result, error)
	TryRun(ctx context.Context, args ...string) (kaggle.Result, error)
}

// Browser is the slice of the browser driver phase 4 uses.
type Browser interface {
	Connect(ctx context.Context) error
	Upvote(url string) error
	Follow(profileURL string) error
	PostDiscussion(forumURL, title, body string) error
	CompleteProfile(editURL string, fields BrowserProfile) error
}

// BrowserProfile mirrors the profile editor fields.
type BrowserProfile struct {
	Occupation   string
	Organization string
	Location     string
	Bio          string
}

// Env carries everything a unit needs to act.
type Env struct {
	CLI      CLI
	Browser  Browser
	Cfg      config.Config
	Username string
	Logger   *zap.Logger

	// WaitForKernel blocks until a pushed kernel finishes executing.
	// Overridable so unit tests do not poll.
	WaitForKernel func(ctx context.Context, ref string) (KernelOutcome, error)
}

// Unit is one attemptable action and the badges it earns.
type Unit struct {
	Name     string
	BadgeIDs []string

	// Run performs the action and returns a detail string for the ledger,
	// such as the slug of the resource it created.
	Run func(ctx context.Context, env *Env) (string, error)
}

// Catalog maps each phase to its units in execution order.
func Catalog() map[int][]Unit {
	return map[int][]Unit{
		1: phase1Units(),
		2: phase2Units(),
		3: phase3Units(),
		4: phase4Units(),
		5: phase5Units(),
	}
}
