package phases

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurfaiz0909/kaggle-skill/internal/config"
	"github.com/nurfaiz0909/kaggle-skill/internal/kaggle"
	"github.com/nurfaiz0909/kaggle-skill/internal/progress"
	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

// fakeCLI records invocations and answers them through respond.
type fakeCLI struct {
	calls   [][]string
	respond func(args []string) kaggle.Result
}

func (f *fakeCLI) TryRun(_ context.Context, args ...string) (kaggle.Result, error) {
	f.calls = append(f.calls, args)
	var res kaggle.Result
	if f.respond != nil {
		res = f.respond(args)
	}
	// A successful pull leaves the kernel's metadata file in the target dir.
	if res.ExitCode == 0 && len(args) > 1 && args[0] == "kernels" && args[1] == "pull" {
		for i, a := range args {
			if a == "-p" && i+1 < len(args) {
				meta := `{"id":"alexisbcook/titanic-tutorial","title":"Titanic Tutorial","code_file":"titanic-tutorial.ipynb","language":"python","kernel_type":"notebook"}`
				_ = os.WriteFile(filepath.Join(args[i+1], "kernel-metadata.json"), []byte(meta), 0o644)
			}
		}
	}
	return res, nil
}

func (f *fakeCLI) Run(ctx context.Context, args ...string) (kaggle.Result, error) {
	res, err := f.TryRun(ctx, args...)
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 {
		return res, &kaggle.ExitError{Args: args, Result: res}
	}
	return res, nil
}

func (f *fakeCLI) commands() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, strings.Join(c[:2], " "))
	}
	return out
}

func testHarness(t *testing.T) (*Runner, *progress.Tracker, *fakeCLI) {
	t.Helper()
	reg := registry.Default()
	store := progress.NewStore(filepath.Join(t.TempDir(), "ledger.json"), reg, nil)
	tracker, err := progress.NewTracker(store, reg, nil)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.TempDir = t.TempDir()

	cli := &fakeCLI{}
	env := &Env{
		CLI:      cli,
		Cfg:      cfg,
		Username: "tester",
		WaitForKernel: func(context.Context, string) (KernelOutcome, error) {
			return KernelComplete, nil
		},
	}
	return NewRunner(reg, tracker, env, nil), tracker, cli
}

func TestPhase1EarnsBadgesAtomically(t *testing.T) {
	runner, tracker, cli := testHarness(t)

	stats, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Attempted)
	assert.Zero(t, stats.Failed)

	// The python notebook unit moves all four of its badges together.
	for _, id := range []string{"python_coder", "api_notebook_creator", "code_uploader", "code_tagger"} {
		assert.Equal(t, progress.StatusEarned, tracker.GetStatus(id), id)
	}
	assert.Equal(t, progress.StatusEarned, tracker.GetStatus("r_coder"))
	assert.Equal(t, progress.StatusEarned, tracker.GetStatus("model_variation_creator"))

	// Every unit went through the CLI.
	assert.Contains(t, cli.commands(), "kernels push")
	assert.Contains(t, cli.commands(), "datasets create")
	assert.Contains(t, cli.commands(), "models create")
}

func TestSecondRunHasNothingToDo(t *testing.T) {
	runner, _, cli := testHarness(t)

	_, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	firstCalls := len(cli.calls)

	stats, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, stats.Attempted)
	assert.Equal(t, firstCalls, len(cli.calls), "second run must make no CLI calls")
}

func TestUnitFailureDoesNotStopThePhase(t *testing.T) {
	runner, tracker, cli := testHarness(t)
	cli.respond = func(args []string) kaggle.Result {
		if args[0] == "datasets" {
			return kaggle.Result{ExitCode: 1, Stderr: "403 Forbidden"}
		}
		return kaggle.Result{}
	}

	stats, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Failed)
	assert.Greater(t, stats.Earned, 0)

	// The dataset unit's badges fail as a group and stay retryable.
	for _, id := range []string{"dataset_creator", "api_dataset_creator", "dataset_tagger", "dataset_documenter"} {
		assert.Equal(t, progress.StatusFailed, tracker.GetStatus(id), id)
		assert.True(t, tracker.ShouldAttempt(id), id)
	}
	// Units after the failed one still ran.
	assert.Equal(t, progress.StatusEarned, tracker.GetStatus("model_creator"))
}

func TestUnpullableForkIsSkippedNotFailed(t *testing.T) {
	runner, tracker, cli := testHarness(t)
	cli.respond = func(args []string) kaggle.Result {
		if args[0] == "kernels" && args[1] == "pull" {
			return kaggle.Result{ExitCode: 1, Stderr: "404 Not Found"}
		}
		return kaggle.Result{}
	}

	stats, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, progress.StatusSkipped, tracker.GetStatus("code_forker"))
	assert.False(t, tracker.ShouldAttempt("code_forker"))
}

func TestPreviewMatchesLiveRun(t *testing.T) {
	runner, tracker, _ := testHarness(t)
	require.NoError(t, tracker.SetStatus("r_coder", progress.StatusEarned, ""))

	preview := runner.Preview(1)
	previewNames := make([]string, 0, len(preview))
	for _, u := range preview {
		previewNames = append(previewNames, u.Name)
	}
	assert.NotContains(t, previewNames, "push-r-notebook")

	stats, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, len(preview), stats.Attempted)
}

func TestPreviewListsOnlyBadgesALiveRunWouldMove(t *testing.T) {
	runner, tracker, _ := testHarness(t)
	// Settle one badge of a multi-badge unit.
	require.NoError(t, tracker.SetStatus("code_tagger", progress.StatusEarned, "notebook=x"))

	preview := runner.Preview(1)
	var pythonUnit *PlannedUnit
	for i := range preview {
		if preview[i].Name == "push-python-notebook" {
			pythonUnit = &preview[i]
		}
	}
	require.NotNil(t, pythonUnit, "partially settled unit must still be planned")
	assert.NotContains(t, pythonUnit.BadgeIDs, "code_tagger")
	assert.ElementsMatch(t, []string{"python_coder", "api_notebook_creator", "code_uploader"}, pythonUnit.BadgeIDs)

	// Every previewed badge is one the retry policy would attempt.
	for _, p := range preview {
		for _, id := range p.BadgeIDs {
			assert.True(t, tracker.ShouldAttempt(id), id)
		}
	}
}

func TestTitanicSubmissionEarnsAllCompetitionBadges(t *testing.T) {
	runner, tracker, cli := testHarness(t)

	stats, err := runner.RunPhase(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Attempted)
	assert.Equal(t, 4, stats.Earned)

	for _, id := range []string{"competition_submitter", "csv_submitter", "api_submitter", "getting_started_competitor"} {
		assert.Equal(t, progress.StatusEarned, tracker.GetStatus(id), id)
	}
	require.NotEmpty(t, cli.calls)
	assert.Equal(t, "competitions", cli.calls[0][0])
}

func TestUnacceptedRulesSkipTheSubmission(t *testing.T) {
	runner, tracker, cli := testHarness(t)
	cli.respond = func(args []string) kaggle.Result {
		return kaggle.Result{ExitCode: 1, Stderr: "You must accept this competition's rules"}
	}

	stats, err := runner.RunPhase(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Skipped)
	rec, ok := tracker.Get("competition_submitter")
	require.True(t, ok)
	assert.Contains(t, rec.Details, "rules")
}

func TestPhase3PipelineFlow(t *testing.T) {
	runner, tracker, cli := testHarness(t)
	cli.respond = func(args []string) kaggle.Result {
		if args[0] == "kernels" && args[1] == "output" {
			// Drop the artifact where the unit expects it.
			for i, a := range args {
				if a == "-p" && i+1 < len(args) {
					writeArtifact(t, args[i+1])
				}
			}
		}
		return kaggle.Result{}
	}

	stats, err := runner.RunPhase(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, progress.StatusEarned, tracker.GetStatus("dataset_pipeline_creator"))
	assert.Equal(t, progress.StatusEarned, tracker.GetStatus("model_pipeline_creator"))
	assert.Equal(t, progress.StatusEarned, tracker.GetStatus("r_markdown_coder"))
}

func TestPhase4SkipsWithoutBrowser(t *testing.T) {
	runner, tracker, _ := testHarness(t)

	stats, err := runner.RunPhase(context.Background(), 4)
	require.NoError(t, err)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, 6, stats.Skipped)
	assert.Equal(t, progress.StatusSkipped, tracker.GetStatus("notebook_upvoter"))
}

func TestNonAutomatableBadgesAreNeverTouched(t *testing.T) {
	runner, tracker, _ := testHarness(t)

	for _, phase := range []int{1, 2, 3, 4, 5} {
		_, err := runner.RunPhase(context.Background(), phase)
		require.NoError(t, err)
	}
	// A manual-only badge stays pending through a full run.
	assert.Equal(t, progress.StatusPending, tracker.GetStatus("gpu_user"))
	assert.Equal(t, progress.StatusPending, tracker.GetStatus("scheduled_runner"))
}

func TestPanickingUnitIsContained(t *testing.T) {
	runner, tracker, _ := testHarness(t)
	runner.units[1] = []Unit{{
		Name:     "explosive",
		BadgeIDs: []string{"python_coder"},
		Run: func(context.Context, *Env) (string, error) {
			panic("boom")
		},
	}}

	stats, err := runner.RunPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, progress.StatusFailed, tracker.GetStatus("python_coder"))
}

func TestUnknownPhase(t *testing.T) {
	runner, _, _ := testHarness(t)
	_, err := runner.RunPhase(context.Background(), 9)
	assert.Error(t, err)
}

func TestPollerWaitsForCompletion(t *testing.T) {
	var n int
	cli := &fakeCLI{respond: func(args []string) kaggle.Result {
		n++
		if n < 3 {
			return kaggle.Result{Stdout: `has status "running"`}
		}
		return kaggle.Result{Stdout: `has status "complete"`}
	}}
	p := NewPoller(cli, time.Millisecond, time.Second, nil)

	outcome, err := p.Wait(context.Background(), "tester/nb")
	require.NoError(t, err)
	assert.Equal(t, KernelComplete, outcome)
	assert.Equal(t, 3, n)
}

func TestPollerTimesOut(t *testing.T) {
	cli := &fakeCLI{respond: func(args []string) kaggle.Result {
		return kaggle.Result{Stdout: `has status "running"`}
	}}
	p := NewPoller(cli, time.Millisecond, 5*time.Millisecond, nil)

	_, err := p.Wait(context.Background(), "tester/nb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still running")
}

func TestPollerReportsKernelError(t *testing.T) {
	cli := &fakeCLI{respond: func(args []string) kaggle.Result {
		return kaggle.Result{Stdout: `has status "error"`}
	}}
	p := NewPoller(cli, time.Millisecond, time.Second, nil)

	outcome, err := p.Wait(context.Background(), "tester/nb")
	require.NoError(t, err)
	assert.Equal(t, KernelError, outcome)
}

func TestSkipfWrapsErrSkip(t *testing.T) {
	err := Skipf("no candidate %s", "found")
	assert.True(t, errors.Is(err, ErrSkip))
	assert.Contains(t, err.Error(), "no candidate found")
}

func writeArtifact(t *testing.T, dir string) {
	t.Helper()
	path := filepath.Join(dir, "results.csv")
	require.NoError(t, os.WriteFile(path, []byte("n,square\n1,1\n"), 0o644))
}
