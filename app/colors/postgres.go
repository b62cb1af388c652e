package colors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool used by PostgresStore.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS colors (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	hex        TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

const projection = `id, name, slug, hex, created_at`

// PostgresStore stores colours in a "colors" table.
type PostgresStore struct {
	db DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres connects to databaseURL, creates the table if needed and
// returns the store with a function closing the pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, func(), error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := NewPostgresStore(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return s, pool.Close, nil
}

// Migrate creates the colors table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create colors table: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Color, error) {
	rows, err := s.db.Query(ctx, `SELECT `+projection+` FROM colors ORDER BY name, slug`)
	if err != nil {
		return nil, fmt.Errorf("query colors: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Color, error) {
		return scanColor(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan colors: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, slug string) (Color, error) {
	row := s.db.QueryRow(ctx, `SELECT `+projection+` FROM colors WHERE slug = $1`, slug)
	c, err := scanColor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Color{}, ErrNotFound
		}
		return Color{}, fmt.Errorf("query color: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Create(ctx context.Context, c Color) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO colors (`+projection+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO NOTHING`,
		c.ID, c.Name, c.Slug, c.Hex, c.CreatedAt,
	)
	if err != nil {
		if isDuplicateError(err) {
			return ErrExists
		}
		return fmt.Errorf("insert color: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExists
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, slug string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM colors WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete color: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanColor(row pgx.Row) (Color, error) {
	var c Color
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Hex, &c.CreatedAt)
	return c, err
}

// isDuplicateError reports a unique violation, which a concurrent insert
// of the same id can still raise.
func isDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
