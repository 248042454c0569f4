// Package tracker records a history of staking summaries. It polls a fixed
// set of delegators and stores a snapshot whenever a summary changes.
package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/screwyprof/stakeview/staking"
)

// Sentinel errors for failure cases
var (
	ErrSummaryFailed     = errors.New("summary computation failed")
	ErrFingerprintLookup = errors.New("fingerprint lookup failed")
	ErrSaveSnapshot      = errors.New("save snapshot failed")
)

// Default configuration values
const (
	DefaultPollInterval = 30 * time.Second
)

// Summarizer computes the current staking summary of a delegator
// ---------------------------------------------------------------
type Summarizer interface {
	Summarize(ctx context.Context, address string) (staking.Summary, error)
	Currency() string
}

// Store provides persistence operations for snapshots
type Store interface {
	// LatestFingerprint returns the fingerprint of the newest snapshot of
	// address, or an empty string when none was recorded yet.
	LatestFingerprint(ctx context.Context, address string) (string, error)
	// SaveSnapshot appends a snapshot to the history of its address.
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
}

// Snapshot is a recorded staking summary
type Snapshot struct {
	Address     string
	Summary     staking.Summary
	Currency    string
	Fingerprint string
	RecordedAt  time.Time
}

// Clock abstracts time for production and testing
// ------------------------------------------------
type Clock interface {
	After(d time.Duration) <-chan time.Time
	Now() time.Time
}

// Event represents a service lifecycle event
// ------------------------------------------
type Event any

type TrackingStarted struct {
	Addresses int
	Interval  time.Duration
}

type SnapshotRecorded struct {
	Address     string
	Fingerprint string
	RecordedAt  time.Time
}

type SnapshotUnchanged struct {
	Address     string
	Fingerprint string
}

type CycleCompleted struct {
	Recorded  int
	Unchanged int
	Failed    int
	Duration  time.Duration
}

type TrackingError struct {
	Address string
	Err     error
}

type TrackingShutdown struct {
	Reason error // Why shutdown occurred (ctx.Err())
}
