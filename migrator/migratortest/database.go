package migratortest

import (
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for pgtestdb
	"github.com/peterldowns/pgtestdb"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/migrator"
	"github.com/screwyprof/stakeview/tracker"
)

// Config points pgtestdb at the server that hosts the template databases
type Config struct {
	User     string `env:"MIGRATOR_TEST_DB_USER" envDefault:"stakeview"`
	Password string `env:"MIGRATOR_TEST_DB_PASSWORD" envDefault:"stakeview"`
	Host     string `env:"MIGRATOR_TEST_DB_HOST" envDefault:"localhost"`
	Port     string `env:"MIGRATOR_TEST_DB_PORT" envDefault:"5432"`
	Options  string `env:"MIGRATOR_TEST_DB_OPTIONS" envDefault:"sslmode=disable"`
}

// CreateTestDatabase creates a test database with schema migrations applied.
// Returns the connection pool and its URL.
func CreateTestDatabase(t *testing.T, migrationsDir string) (*pgxpool.Pool, string) {
	t.Helper()

	return createTestDatabaseWithMigrator(t, migrator.NewSchemaMigrator(migrationsDir))
}

// CreateSeededTestDatabase creates a test database with migrations applied and snapshots recorded.
func CreateSeededTestDatabase(t *testing.T, migrationsDir string, snapshots []tracker.Snapshot) (*pgxpool.Pool, string) {
	t.Helper()

	return createTestDatabaseWithMigrator(t, migrator.NewSeededMigrator(migrationsDir, snapshots))
}

// createTestDatabaseWithMigrator creates a test database using the provided migrator
func createTestDatabaseWithMigrator(t *testing.T, migratorInstance pgtestdb.Migrator) (*pgxpool.Pool, string) {
	t.Helper()

	dbConfig := pgtestdb.Custom(t, createTestDatabaseConfig(t), migratorInstance)

	pool, err := pgxpool.New(t.Context(), dbConfig.URL())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	t.Logf("testdbconf: %s", dbConfig.URL())

	return pool, dbConfig.URL()
}

// createTestDatabaseConfig creates the pgtestdb configuration for stakeview tests
func createTestDatabaseConfig(t *testing.T) pgtestdb.Config {
	t.Helper()

	cfg, err := env.ParseAs[Config]()
	require.NoError(t, err)

	return pgtestdb.Config{
		DriverName: "pgx",
		User:       cfg.User,
		Password:   cfg.Password,
		Host:       cfg.Host,
		Port:       cfg.Port,
		Options:    cfg.Options,
	}
}
