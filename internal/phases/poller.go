package phases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// KernelOutcome is the terminal state of a remote kernel run.
type KernelOutcome string

const (
	KernelComplete KernelOutcome = "complete"
	KernelError    KernelOutcome = "error"
	KernelCancel   KernelOutcome = "cancel"
)

// Poller watches a pushed kernel until it reaches a terminal state. The
// interval and deadline are fixed for a whole run; remote execution time is
// dominated by queueing, so adaptive backoff buys nothing here.
type Poller struct {
	cli      CLI
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
}

// NewPoller builds a poller from the configured interval and timeout.
func NewPoller(cli CLI, interval, timeout time.Duration, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{cli: cli, interval: interval, timeout: timeout, logger: logger}
}

// Wait polls `kernels status` until the kernel completes, errors, is
// cancelled, or the deadline passes.
func (p *Poller) Wait(ctx context.Context, ref string) (KernelOutcome, error) {
	deadline := time.Now().Add(p.timeout)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		res, err := p.cli.Run(ctx, "kernels", "status", ref)
		if err != nil {
			return "", fmt.Errorf("kernel status %s: %w", ref, err)
		}
		outcome, terminal := classifyKernelStatus(res.Combined())
		if terminal {
			p.logger.Info("kernel finished",
				zap.String("ref", ref), zap.String("outcome", string(outcome)))
			return outcome, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("kernel %s still running after %s", ref, p.timeout)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// classifyKernelStatus maps the status line the CLI prints to an outcome.
// Unknown text means the kernel is still queued or running.
func classifyKernelStatus(out string) (KernelOutcome, bool) {
	lower := strings.ToLower(out)
	switch {
	case strings.Contains(lower, "complete"):
		return KernelComplete, true
	case strings.Contains(lower, "error"):
		return KernelError, true
	case strings.Contains(lower, "cancel"):
		return KernelCancel, true
	default:
		return "", false
	}
}
