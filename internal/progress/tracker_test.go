package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTracker(t *testing.T) (*Tracker, *Store) {
	t.Helper()
	s := testStore(t)
	tr, err := NewTracker(s, s.registry, nil)
	require.NoError(t, err)
	return tr, s
}

func TestSetAndGetStatus(t *testing.T) {
	tr, _ := testTracker(t)

	require.NoError(t, tr.SetStatus("python_coder", StatusAttempting, "pushing notebook"))
	assert.Equal(t, StatusAttempting, tr.GetStatus("python_coder"))

	rec, ok := tr.Get("python_coder")
	require.True(t, ok)
	assert.Equal(t, "pushing notebook", rec.Details)
	assert.False(t, rec.Updated.IsZero())
}

func TestSetStatusUnknownBadge(t *testing.T) {
	tr, _ := testTracker(t)
	err := tr.SetStatus("nonexistent_badge_xyz", StatusEarned, "")
	assert.ErrorIs(t, err, ErrUnknownBadge)
}

func TestSetStatusInvalidValue(t *testing.T) {
	tr, _ := testTracker(t)
	err := tr.SetStatus("python_coder", Status("done"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestEarnedIsTerminal(t *testing.T) {
	tr, s := testTracker(t)

	require.NoError(t, tr.SetStatus("python_coder", StatusEarned, "notebook=x"))
	assert.True(t, tr.IsEarned("python_coder"))
	assert.False(t, tr.ShouldAttempt("python_coder"))

	// The law must survive a fresh load from disk.
	tr2, err := NewTracker(s, s.registry, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusEarned, tr2.GetStatus("python_coder"))
	assert.False(t, tr2.ShouldAttempt("python_coder"))
}

func TestFailedIsRetryable(t *testing.T) {
	tr, s := testTracker(t)

	require.NoError(t, tr.SetStatus("r_coder", StatusFailed, "push rejected"))
	assert.True(t, tr.ShouldAttempt("r_coder"))

	tr2, err := NewTracker(s, s.registry, nil)
	require.NoError(t, err)
	assert.True(t, tr2.ShouldAttempt("r_coder"))

	// Re-attempt succeeds this time.
	require.NoError(t, tr2.SetStatus("r_coder", StatusAttempting, ""))
	require.NoError(t, tr2.SetStatus("r_coder", StatusEarned, "notebook=y"))
	assert.Equal(t, StatusEarned, tr2.GetStatus("r_coder"))
}

func TestSkippedIsNotRetried(t *testing.T) {
	tr, _ := testTracker(t)
	require.NoError(t, tr.SetStatus("python_coder", StatusSkipped, "no public notebook to fork"))
	assert.False(t, tr.ShouldAttempt("python_coder"))
}

func TestAttemptingBlocksUntilStale(t *testing.T) {
	tr, _ := testTracker(t)
	require.NoError(t, tr.SetStatus("python_coder", StatusAttempting, ""))
	assert.False(t, tr.ShouldAttempt("python_coder"))

	// Simulate a crashed run from two hours ago.
	tr.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.True(t, tr.ShouldAttempt("python_coder"))

	// Disabling the window restores strict blocking.
	tr.SetStaleAttemptWindow(0)
	assert.False(t, tr.ShouldAttempt("python_coder"))
}

func TestEndToEndCollectCycle(t *testing.T) {
	tr, s := testTracker(t)

	require.True(t, tr.ShouldAttempt("python_coder"))
	require.NoError(t, tr.SetStatus("python_coder", StatusAttempting, ""))
	// Remote push succeeds.
	require.NoError(t, tr.SetStatus("python_coder", StatusEarned, "notebook=x"))

	tr2, err := NewTracker(s, s.registry, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusEarned, tr2.GetStatus("python_coder"))
	assert.False(t, tr2.ShouldAttempt("python_coder"))
}

func TestSummaryCounts(t *testing.T) {
	tr, _ := testTracker(t)

	require.NoError(t, tr.SetStatus("python_coder", StatusEarned, ""))
	require.NoError(t, tr.SetStatus("r_coder", StatusFailed, ""))

	summary := tr.Summary()
	require.Len(t, summary, 5)

	p1 := summary[0]
	assert.Equal(t, 1, p1.Phase)
	assert.Equal(t, 2, p1.Total)
	assert.Equal(t, 1, p1.Earned)
	assert.Equal(t, 1, p1.Failed)
	assert.Equal(t, 0, p1.Pending)

	p5 := summary[4]
	assert.Equal(t, 5, p5.Phase)
	assert.Equal(t, 1, p5.Pending)
}
