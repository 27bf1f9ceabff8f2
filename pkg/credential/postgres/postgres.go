// Package postgres provides a PostgreSQL-backed credential.Store using
// pgx/v5 connection pooling. The verifier only reads; CreateClient and
// SetActive exist for provisioning and operations tooling.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/torii-gw/torii/pkg/credential"
)

// ErrDuplicateClient is returned when provisioning reuses a client id.
var ErrDuplicateClient = errors.New("client id already exists")

// Store is a PostgreSQL-backed credential store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements credential.Store at compile time.
var _ credential.Store = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// GetClient retrieves a client record by id.
func (s *Store) GetClient(ctx context.Context, clientID string) (*credential.AuthClient, error) {
	var c credential.AuthClient

	err := s.pool.QueryRow(ctx, `
		SELECT client_id, company_id, secret_hash, active, home_page, created_at
		FROM auth_clients
		WHERE client_id = $1
	`, clientID).Scan(
		&c.ClientID, &c.CompanyID, &c.SecretHash, &c.Active, &c.HomePage, &c.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, credential.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying auth client: %w", err)
	}

	return &c, nil
}

// CreateClient inserts a provisioned client record.
func (s *Store) CreateClient(ctx context.Context, c *credential.AuthClient) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO auth_clients (client_id, company_id, secret_hash, active, home_page, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ClientID, c.CompanyID, c.SecretHash, c.Active, c.HomePage, c.CreatedAt)

	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateClient
		}
		return fmt.Errorf("inserting auth client: %w", err)
	}

	return nil
}

// SetActive enables or disables a client without touching its credential.
func (s *Store) SetActive(ctx context.Context, clientID string, active bool) error {
	result, err := s.pool.Exec(ctx,
		"UPDATE auth_clients SET active = $1 WHERE client_id = $2",
		active, clientID,
	)
	if err != nil {
		return fmt.Errorf("updating auth client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}
	return nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isDuplicateKey reports whether err is a unique-constraint violation.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
