// Package kaggle wraps the official kaggle command-line client and the
// credential discovery chain it depends on. Every remote side effect in the
// collector flows through Runner, which owns binary discovery, output
// capture, and the fixed post-call delay that keeps us inside the platform's
// rate limits.
package kaggle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result captures one CLI invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Combined returns stdout and stderr concatenated for log lines.
func (r Result) Combined() string {
	return strings.TrimSpace(r.Stdout + "\n" + r.Stderr)
}

// ExitError is returned by Run when the CLI exits non-zero.
type ExitError struct {
	Args   []string
	Result Result
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("kaggle %s: exit %d: %s",
		strings.Join(e.Args, " "), e.Result.ExitCode, strings.TrimSpace(e.Result.Stderr))
}

// Runner shells out to the kaggle CLI with a fixed argument vector per call.
type Runner struct {
	binary  string
	delay   time.Duration
	timeout time.Duration
	logger  *zap.Logger

	// sleep is swappable so tests do not pay the rate-limit pause.
	sleep func(time.Duration)
}

// NewRunner locates the kaggle binary and returns a runner around it. delay
// is the pause inserted after every invocation; timeout bounds a single one.
func NewRunner(delay, timeout time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		binary:  findBinary(),
		delay:   delay,
		timeout: timeout,
		logger:  logger,
		sleep:   time.Sleep,
	}
}

// findBinary looks for the kaggle CLI in PATH and the usual pip install
// locations, falling back to the bare name.
func findBinary() string {
	if path, err := exec.LookPath("kaggle"); err == nil {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".local", "bin", "kaggle")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "kaggle"
}

// SetBinary overrides binary discovery. Used by tests and by configs that
// pin a specific client install.
func (r *Runner) SetBinary(path string) {
	r.binary = path
}

// Binary returns the resolved CLI path.
func (r *Runner) Binary() string {
	return r.binary
}

// Run invokes the CLI and fails on a non-zero exit. The returned error wraps
// an *ExitError carrying the captured output.
func (r *Runner) Run(ctx context.Context, args ...string) (Result, error) {
	res, err := r.TryRun(ctx, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &ExitError{Args: args, Result: res}
	}
	return res, nil
}

// TryRun invokes the CLI and leaves exit-code inspection to the caller. Only
// failures to start or finish the process (not found, timeout, cancelled)
// are reported as errors.
func (r *Runner) TryRun(ctx context.Context, args ...string) (Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Info("kaggle cli", zap.Strings("args", args))
	fmt.Printf("  $ %s %s\n", r.binary, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	// The fixed delay applies to every remote call, successful or not.
	defer func() {
		if r.delay > 0 {
			r.sleep(r.delay)
		}
	}()

	if err != nil {
		// A timed-out process also surfaces as an ExitError, so the
		// context takes precedence.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("kaggle %s: %w", strings.Join(args, " "), ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("kaggle %s: %w", strings.Join(args, " "), err)
	}
	return res, nil
}
