// Package postgres implements a blobstore.Backend backed by a single
// relational table, using pgx's connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferrostorage/blobvault/pkg/blobstore"
	"github.com/ferrostorage/blobvault/pkg/util"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"google.golang.org/grpc/codes"
)

// Config holds the connection parameters for a Backend.
type Config struct {
	ConnectionString string
	MaxConnections   int32
	ConnectTimeout   time.Duration
	TableName        string
}

type backend struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewBackend opens a connection pool against config.ConnectionString
// and returns a blobstore.Backend registered under blobstore.Postgres.
// The backend stores blobs in an existing table of the form
// (reference text primary key, versioned_hash text, data bytea),
// named config.TableName (defaulting to "blob_store"). NewBackend does
// not create the table.
func NewBackend(ctx context.Context, config Config) (blobstore.Backend, error) {
	if config.ConnectionString == "" {
		return nil, errors.New("connection string is required")
	}
	if config.MaxConnections == 0 {
		config.MaxConnections = 10
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 30 * time.Second
	}
	if config.TableName == "" {
		config.TableName = "blob_store"
	}

	poolConfig, err := pgxpool.ParseConfig(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	poolConfig.MaxConns = config.MaxConnections

	timeoutCtx, cancel := context.WithTimeout(ctx, config.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(timeoutCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(timeoutCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &backend{pool: pool, tableName: config.TableName}, nil
}

func (b *backend) Name() blobstore.BackendName {
	return blobstore.Postgres
}

// Store upserts the blob keyed by versionedHash, which also serves as
// the returned reference. Re-storing the same versionedHash overwrites
// the previous row, matching Manager's assumption that callers intend
// repeat stores of the same hash.
func (b *backend) Store(ctx context.Context, versionedHash string, data []byte) (string, error) {
	_, err := b.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (reference, versioned_hash, data) VALUES ($1, $1, $2)
			ON CONFLICT (reference) DO UPDATE SET data = EXCLUDED.data`, b.tableName),
		versionedHash, data)
	if err != nil {
		return "", util.StatusWrap(err, "Failed to store blob")
	}
	return versionedHash, nil
}

func (b *backend) Fetch(ctx context.Context, reference string) ([]byte, error) {
	var data []byte
	err := b.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT data FROM %s WHERE reference = $1`, b.tableName),
		reference).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, util.StatusWrapWithCode(err, codes.NotFound, "Blob not found")
	}
	if err != nil {
		return nil, util.StatusWrap(err, "Failed to fetch blob")
	}
	return data, nil
}

// Close releases the underlying connection pool.
func (b *backend) Close() {
	b.pool.Close()
}
