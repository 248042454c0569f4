package pgxstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screwyprof/stakeview/tracker"
	"github.com/screwyprof/stakeview/tracker/store/dbrow"
)

// Sentinel errors for store operations
var (
	ErrTransactionFailed = errors.New("transaction failed")
	ErrLockFailed        = errors.New("address lock failed")
	ErrFingerprintFailed = errors.New("failed to get latest fingerprint")
	ErrInsertFailed      = errors.New("insert operation failed")
)

const latestFingerprintQuery = `
	SELECT fingerprint FROM staking_snapshots
	WHERE address = $1
	ORDER BY recorded_at DESC, id DESC
	LIMIT 1`

// Store implements tracker.Store interface using pgx
type Store struct {
	pool       *pgxpool.Pool
	insertStmt string
}

// New creates a new PostgreSQL store with an existing connection pool
// Returns the store and a closer function
func New(pool *pgxpool.Pool) (*Store, func()) {
	store := &Store{
		pool:       pool,
		insertStmt: buildInsert(),
	}
	closer := func() {
		pool.Close()
	}
	return store, closer
}

// LatestFingerprint returns the fingerprint of the newest snapshot of address
func (s *Store) LatestFingerprint(ctx context.Context, address string) (string, error) {
	fingerprint, err := latestFingerprint(ctx, s.pool, address)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFingerprintFailed, err)
	}
	return fingerprint, nil
}

// SaveSnapshot appends a snapshot unless the newest one already has the same
// fingerprint. Concurrent writers for the same address are serialized by a
// transaction scoped advisory lock.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot tracker.Snapshot) error {
	row := dbrow.FromSnapshot(snapshot)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }() // No-op if commit succeeds

	if _, err = tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", row.Address); err != nil {
		return fmt.Errorf("%w: %w", ErrLockFailed, err)
	}

	latest, err := latestFingerprint(ctx, tx, row.Address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFingerprintFailed, err)
	}
	if latest == row.Fingerprint {
		return nil
	}

	if _, err = tx.Exec(ctx, s.insertStmt, row.Args()...); err != nil {
		return fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}

	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func latestFingerprint(ctx context.Context, q querier, address string) (string, error) {
	var fingerprint string
	err := q.QueryRow(ctx, latestFingerprintQuery, address).Scan(&fingerprint)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fingerprint, nil
}

// buildInsert renders the INSERT statement for dbrow.Columns
func buildInsert() string {
	placeholders := make([]string, len(dbrow.Columns))
	for i := range dbrow.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO staking_snapshots (%s) VALUES (%s)",
		strings.Join(dbrow.Columns, ", "),
		strings.Join(placeholders, ", "),
	)
}
