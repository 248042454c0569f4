package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/peterldowns/pgtestdb"
	"github.com/peterldowns/pgtestdb/migrators/sqlmigrator"
	migrate "github.com/rubenv/sql-migrate"

	"github.com/screwyprof/stakeview/tracker"
	"github.com/screwyprof/stakeview/tracker/store/pgxstore"
)

// Migration constants
const (
	migrationsTableName = "schema_migrations"
	schemaHashPrefix    = "schema_only_"
	seededHashPrefix    = "seeded_demo_"
)

// Migration-related errors
var (
	ErrMigrationExecution = errors.New("migration execution failed")
	ErrMigrationHash      = errors.New("migration hash calculation failed")
	ErrSeedFailed         = errors.New("seeding snapshots failed")
)

// SchemaMigrator applies only database schema migrations
// Used for production and tests that need schema-only setup
type SchemaMigrator struct {
	migrationsDir string
}

// NewSchemaMigrator creates a migrator that applies schema migrations only
func NewSchemaMigrator(migrationsDir string) *SchemaMigrator {
	return &SchemaMigrator{
		migrationsDir: migrationsDir,
	}
}

func (m *SchemaMigrator) Hash() (string, error) {
	baseHash, err := migrationsHash(m.migrationsDir)
	if err != nil {
		return "", err
	}
	return schemaHashPrefix + baseHash, nil
}

func (m *SchemaMigrator) Migrate(ctx context.Context, db *sql.DB, conf pgtestdb.Config) error {
	return applyMigrations(db, m.migrationsDir)
}

// SeededMigrator applies schema migrations and records a fixed set of snapshots
// Used for web API tests that need history to page through
type SeededMigrator struct {
	migrationsDir string
	snapshots     []tracker.Snapshot
}

// NewSeededMigrator creates a migrator that applies schema + seeds snapshots
func NewSeededMigrator(migrationsDir string, snapshots []tracker.Snapshot) *SeededMigrator {
	return &SeededMigrator{
		migrationsDir: migrationsDir,
		snapshots:     snapshots,
	}
}

// Hash changes whenever the migrations or the seeded snapshots change
func (m *SeededMigrator) Hash() (string, error) {
	baseHash, err := migrationsHash(m.migrationsDir)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(seededHashPrefix)
	b.WriteString(baseHash)
	for _, s := range m.snapshots {
		b.WriteString("_")
		b.WriteString(s.Fingerprint)
		b.WriteString(strconv.FormatInt(s.RecordedAt.Unix(), 10))
	}
	return b.String(), nil
}

func (m *SeededMigrator) Migrate(ctx context.Context, db *sql.DB, conf pgtestdb.Config) error {
	if err := applyMigrations(db, m.migrationsDir); err != nil {
		return err
	}
	return m.seed(ctx, conf.URL())
}

// seed writes the snapshots through the tracker store so rows match production
func (m *SeededMigrator) seed(ctx context.Context, dbURL string) error {
	slog.InfoContext(ctx, "Seeding demo database with staking snapshots",
		slog.Int("snapshots", len(m.snapshots)),
	)

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSeedFailed, err)
	}

	store, closer := pgxstore.New(pool)
	defer closer()

	for _, s := range m.snapshots {
		if err := store.SaveSnapshot(ctx, s); err != nil {
			return fmt.Errorf("%w: %w", ErrSeedFailed, err)
		}
	}
	return nil
}

// ApplyMigrations applies database migrations using sql-migrate with the provided pgx pool
func ApplyMigrations(pool *pgxpool.Pool, migrationsDir string) error {
	// sql-migrate needs a database/sql handle
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return applyMigrations(db, migrationsDir)
}

// applyMigrations applies database migrations using sql-migrate
func applyMigrations(db *sql.DB, migrationsDir string) error {
	source := &migrate.FileMigrationSource{Dir: migrationsDir}
	migrationSet := &migrate.MigrationSet{TableName: migrationsTableName}

	_, err := migrationSet.Exec(db, "postgres", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationExecution, err)
	}
	return nil
}

func migrationsHash(migrationsDir string) (string, error) {
	source := &migrate.FileMigrationSource{Dir: migrationsDir}
	migrationSet := &migrate.MigrationSet{TableName: migrationsTableName}

	hash, err := sqlmigrator.New(source, migrationSet).Hash()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrMigrationHash, migrationsDir, err)
	}
	return hash, nil
}
