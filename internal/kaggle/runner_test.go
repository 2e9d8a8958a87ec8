package kaggle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCLI writes an executable script that stands in for the kaggle binary.
func fakeCLI(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kaggle")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func testRunner(t *testing.T, script string) (*Runner, *[]time.Duration) {
	t.Helper()
	r := NewRunner(5*time.Second, time.Minute, nil)
	r.SetBinary(fakeCLI(t, script))
	var slept []time.Duration
	r.sleep = func(d time.Duration) { slept = append(slept, d) }
	return r, &slept
}

func TestRunCapturesOutput(t *testing.T) {
	r, _ := testRunner(t, `echo "ref,deadline"; echo "oops" >&2`)

	res, err := r.Run(context.Background(), "competitions", "list", "--csv")
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "ref,deadline\n", res.Stdout)
	assert.Equal(t, "oops\n", res.Stderr)
}

func TestRunFailsOnNonZeroExit(t *testing.T) {
	r, _ := testRunner(t, `echo "403 Forbidden" >&2; exit 1`)

	res, err := r.Run(context.Background(), "kernels", "push")
	require.Error(t, err)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.Result.ExitCode)
	assert.Contains(t, exitErr.Error(), "403 Forbidden")
	assert.Equal(t, 1, res.ExitCode)
}

func TestTryRunLeavesExitCodeToCaller(t *testing.T) {
	r, _ := testRunner(t, `exit 3`)

	res, err := r.TryRun(context.Background(), "kernels", "status", "x")
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestEveryInvocationPaysTheDelay(t *testing.T) {
	r, slept := testRunner(t, `exit 0`)

	_, err := r.Run(context.Background(), "datasets", "list")
	require.NoError(t, err)
	_, err = r.TryRun(context.Background(), "datasets", "list")
	require.NoError(t, err)

	require.Len(t, *slept, 2)
	assert.Equal(t, 5*time.Second, (*slept)[0])
}

func TestMissingBinaryIsAnError(t *testing.T) {
	r := NewRunner(0, time.Minute, nil)
	r.SetBinary(filepath.Join(t.TempDir(), "no-such-binary"))
	r.sleep = func(time.Duration) {}

	_, err := r.TryRun(context.Background(), "competitions", "list")
	assert.Error(t, err)
}

func TestTimeoutKillsTheProcess(t *testing.T) {
	r, _ := testRunner(t, `sleep 10`)
	r.timeout = 100 * time.Millisecond

	_, err := r.TryRun(context.Background(), "kernels", "push")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
