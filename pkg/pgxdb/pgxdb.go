package pgxdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for pgxdb package operations
var (
	// Connection errors
	ErrInvalidConnectionString = errors.New("invalid database connection string")
	ErrConnectionPoolCreation  = errors.New("failed to create database connection pool")
	ErrDatabaseConnection      = errors.New("failed to connect to database")
)

// PoolConfig sizes the connection pool
type PoolConfig struct {
	MinConns int32
	MaxConns int32
}

// DefaultPoolConfig keeps a couple of warm connections and caps at ten
var DefaultPoolConfig = PoolConfig{MinConns: 2, MaxConns: 10}

// NewConnection creates a new pgx database connection pool with production-optimized settings
func NewConnection(ctx context.Context, connectionString string) (*pgxpool.Pool, error) {
	return NewConnectionWithPool(ctx, connectionString, DefaultPoolConfig)
}

// NewConnectionWithPool creates a connection pool sized by poolCfg
func NewConnectionWithPool(ctx context.Context, connectionString string, poolCfg PoolConfig) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	config.MinConns = poolCfg.MinConns
	config.MaxConns = poolCfg.MaxConns

	// Connection lifecycle management
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	config.ConnConfig.ConnectTimeout = 10 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionPoolCreation, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	return pool, nil
}
