package session

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migrations holds the goose migrations for PostgresStore.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"

const (
	upsertSession = `
INSERT INTO sessions (id, token, created_at, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET token = EXCLUDED.token, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at`

	selectSession = `SELECT token, created_at FROM sessions WHERE id = $1 AND expires_at > $2`

	deleteSession = `DELETE FROM sessions WHERE id = $1`

	deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= $1`
)

// DBTX is the subset of pgxpool.Pool used by PostgresStore.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the sessions table.
// Expired rows are invisible to Get and removed by DeleteExpired.
type PostgresStore struct {
	db  DBTX
	now func() time.Time
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore returns a store over db. Run Migrations first.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) Put(ctx context.Context, id string, data Data, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expiresAt := s.now().Add(ttl)
	if _, err := s.db.Exec(ctx, upsertSession, id, data.Token, data.CreatedAt, expiresAt); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Data, error) {
	var data Data
	err := s.db.QueryRow(ctx, selectSession, id, s.now()).Scan(&data.Token, &data.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Data{}, ErrNotFound
	}
	if err != nil {
		return Data{}, errors.Join(ErrStore, err)
	}
	return data, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, deleteSession, id); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

// DeleteExpired removes rows past their expiry and reports how many were removed.
func (s *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteExpiredSessions, s.now())
	if err != nil {
		return 0, errors.Join(ErrStore, err)
	}
	return tag.RowsAffected(), nil
}
