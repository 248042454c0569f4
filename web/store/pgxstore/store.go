package pgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screwyprof/stakeview/web/history"
	"github.com/screwyprof/stakeview/web/store/dbrow"
)

// Sentinel errors for store operations
var (
	ErrQueryFailed = errors.New("snapshot query failed")
)

// SnapshotsFinder implements snapshot querying using pgx
type SnapshotsFinder struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL snapshots finder with an existing connection pool
// Returns the finder and a closer function
func New(pool *pgxpool.Pool) (*SnapshotsFinder, func()) {
	finder := &SnapshotsFinder{pool: pool}
	closer := func() {
		pool.Close()
	}
	return finder, closer
}

// FindSnapshots queries one page of a delegator's snapshots.
// Uses LIMIT n+1 technique for efficient pagination without separate count query
func (f *SnapshotsFinder) FindSnapshots(ctx context.Context, criteria history.SnapshotsCriteria) (*history.SnapshotsPage, error) {
	query, args := NewSnapshotsQuery().ForCriteria(criteria).Build()

	rows, err := f.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	dbRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbrow.Snapshot])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	hasMore := uint64(len(dbRows)) > criteria.ItemsPerPage()
	if hasMore {
		// Remove the extra record we requested to detect "has more"
		dbRows = dbRows[:criteria.ItemsPerPage()]
	}

	snapshots := make([]history.Snapshot, len(dbRows))
	for i, row := range dbRows {
		snapshots[i] = row.ToHistory()
	}

	return &history.SnapshotsPage{
		Snapshots: snapshots,
		HasMore:   hasMore,
		Number:    criteria.Page,
		Size:      criteria.Size,
	}, nil
}
