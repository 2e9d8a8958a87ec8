// Package progress implements the persistent badge ledger: a JSON document
// mapping badge id to its collection status, plus the retry policy layered on
// top of it. The ledger is the sole durable state of the collector and is
// what makes partial runs resumable.
package progress

import "errors"

// Status is the collection state of a single badge.
type Status string

const (
	StatusPending    Status = "pending"    // never attempted
	StatusAttempting Status = "attempting" // attempt in flight
	StatusEarned     Status = "earned"     // confirmed earned, terminal
	StatusFailed     Status = "failed"     // last attempt failed, retryable
	StatusSkipped    Status = "skipped"    // precondition unmet, settled until cleared
)

// Valid reports whether s is one of the five allowed statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAttempting, StatusEarned, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

var (
	// ErrUnknownBadge is returned when a status mutation names a badge id
	// that is not in the registry.
	ErrUnknownBadge = errors.New("unknown badge id")

	// ErrInvalidStatus is returned when a status mutation uses a value
	// outside the five allowed states.
	ErrInvalidStatus = errors.New("invalid badge status")
)
