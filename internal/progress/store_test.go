package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	defs := []registry.BadgeDefinition{
		{ID: "python_coder", Name: "Python Coder", Category: registry.CategoryCoder, Phase: 1, Automatable: true, Description: "x"},
		{ID: "r_coder", Name: "R Coder", Category: registry.CategoryCoder, Phase: 1, Automatable: true, Description: "x"},
		{ID: "api_submitter", Name: "API Submitter", Category: registry.CategoryCompetition, Phase: 2, Automatable: true, Description: "x"},
		{ID: "dataset_pipeline_creator", Name: "Dataset Pipeline Creator", Category: registry.CategoryDataset, Phase: 3, Automatable: true, Description: "x"},
		{ID: "notebook_upvoter", Name: "Notebook Upvoter", Category: registry.CategoryCommunity, Phase: 4, Automatable: true, Description: "x"},
		{ID: "night_owl", Name: "Night Owl", Category: registry.CategoryMilestone, Phase: 5, Automatable: false, Description: "x"},
	}
	r, err := registry.New(defs)
	require.NoError(t, err)
	return r
}

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "badge-progress.json")
	return NewStore(path, testRegistry(t), nil)
}

func TestLoadInitializesAllBadges(t *testing.T) {
	s := testStore(t)

	ledger, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, ledger, 6)
	for id, rec := range ledger {
		assert.Equal(t, StatusPending, rec.Status, "badge %s", id)
		assert.False(t, rec.Updated.IsZero(), "badge %s has no timestamp", id)
	}

	// The merged map must have been written back.
	_, err = os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestLoadIsIdempotent(t *testing.T) {
	s := testStore(t)

	_, err := s.Load()
	require.NoError(t, err)
	first, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	_, err = s.Load()
	require.NoError(t, err)
	second, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestLoadPreservesExistingRecords(t *testing.T) {
	s := testStore(t)

	ledger, err := s.Load()
	require.NoError(t, err)
	ledger["python_coder"] = Record{Status: StatusEarned, Details: "notebook=x", Updated: time.Now()}
	require.NoError(t, s.Save(ledger))

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, StatusEarned, reloaded["python_coder"].Status)
	assert.Equal(t, "notebook=x", reloaded["python_coder"].Details)
}

func TestLoadPreservesUnknownIDs(t *testing.T) {
	s := testStore(t)

	// A ledger written by a previous run with a different registry shape.
	stale := map[string]Record{
		"retired_badge": {Status: StatusEarned, Details: "from an old catalog", Updated: time.Now()},
	}
	require.NoError(t, s.Save(stale))

	ledger, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, ledger, 7)
	assert.Equal(t, StatusEarned, ledger["retired_badge"].Status)
}

func TestCorruptLedgerTreatedAsAbsent(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	ledger, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, ledger, 6)
	for _, rec := range ledger {
		assert.Equal(t, StatusPending, rec.Status)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := testStore(t)
	_, err := s.Load()
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// And what it wrote is well-formed JSON.
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	var out map[string]Record
	assert.NoError(t, json.Unmarshal(data, &out))
}
