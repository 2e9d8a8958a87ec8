package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/nurfaiz0909/kaggle-skill/internal/registry"
)

// Record is the persisted state of one badge.
type Record struct {
	Status  Status    `json:"status"`
	Details string    `json:"details"`
	Updated time.Time `json:"updated"`
}

// Store persists the badge ledger as a single JSON document at a fixed path.
//
// The ledger must survive crashes mid-write (save goes through a temp file
// and rename) and must survive registry drift: ids in the file that the
// current registry does not know are preserved verbatim, never dropped.
type Store struct {
	path     string
	registry *registry.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewStore creates a Store writing to path. The registry supplies the id set
// used to initialize fresh records on load.
func NewStore(path string, reg *registry.Registry, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:     path,
		registry: reg,
		logger:   logger,
		now:      time.Now,
	}
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted ledger, lazily creating a pending record for every
// registry badge that has none, and writes the merged map back. A missing,
// corrupt, or unreadable file is treated as empty: badge progress is
// best-effort and recoverable by re-running, so a broken ledger is never
// fatal.
//
// Load is idempotent: a second call with no intervening mutation persists
// byte-identical content.
func (s *Store) Load() (map[string]Record, error) {
	ledger := s.read()

	changed := false
	for _, id := range s.registry.IDs() {
		if _, ok := ledger[id]; ok {
			continue
		}
		ledger[id] = Record{Status: StatusPending, Updated: s.now()}
		changed = true
	}

	if changed {
		if err := s.Save(ledger); err != nil {
			return nil, fmt.Errorf("initialize ledger: %w", err)
		}
	}
	return ledger, nil
}

// read parses the file on disk, returning an empty map for any failure.
func (s *Store) read() map[string]Record {
	ledger := make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("ledger unreadable, starting fresh",
				zap.String("path", s.path), zap.Error(err))
		}
		return ledger
	}
	if err := json.Unmarshal(data, &ledger); err != nil {
		s.logger.Warn("ledger corrupt, starting fresh",
			zap.String("path", s.path), zap.Error(err))
		return make(map[string]Record)
	}
	return ledger
}

// Save atomically persists the full ledger. The previous file version stays
// intact if the process dies mid-write: content goes to a temp file in the
// same directory first and is renamed over the target only once fully
// flushed.
func (s *Store) Save(ledger map[string]Record) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
