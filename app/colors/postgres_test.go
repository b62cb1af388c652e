package colors

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	color Color
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*uuid.UUID) = r.color.ID
	*dest[1].(*string) = r.color.Name
	*dest[2].(*string) = r.color.Slug
	*dest[3].(*string) = r.color.Hex
	*dest[4].(*time.Time) = r.color.CreatedAt
	return nil
}

type execCall struct {
	sql  string
	args []any
}

type fakeDB struct {
	execs   []execCall
	tag     pgconn.CommandTag
	execErr error
	row     fakeRow
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, execCall{sql: sql, args: args})
	return db.tag, db.execErr
}

func (db *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("connection refused")
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return db.row
}

func TestPostgresStoreGet(t *testing.T) {
	ctx := context.Background()
	red, err := New("Red", "#f00", now)
	require.NoError(t, err)

	db := &fakeDB{row: fakeRow{color: red}}
	s := NewPostgresStore(db)

	got, err := s.Get(ctx, "red")
	require.NoError(t, err)
	assert.Equal(t, red, got)

	db.row = fakeRow{err: pgx.ErrNoRows}
	_, err = s.Get(ctx, "red")
	assert.ErrorIs(t, err, ErrNotFound)

	db.row = fakeRow{err: errors.New("timeout")}
	_, err = s.Get(ctx, "red")
	assert.ErrorContains(t, err, "query color")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPostgresStoreCreate(t *testing.T) {
	ctx := context.Background()
	red, err := New("Red", "#f00", now)
	require.NoError(t, err)

	db := &fakeDB{tag: pgconn.NewCommandTag("INSERT 0 1")}
	s := NewPostgresStore(db)

	require.NoError(t, s.Create(ctx, red))
	require.Len(t, db.execs, 1)
	assert.Contains(t, db.execs[0].sql, "ON CONFLICT (slug) DO NOTHING")
	assert.Equal(t, []any{red.ID, red.Name, red.Slug, red.Hex, red.CreatedAt}, db.execs[0].args)

	db.tag = pgconn.NewCommandTag("INSERT 0 0")
	assert.ErrorIs(t, s.Create(ctx, red), ErrExists)

	db.execErr = &pgconn.PgError{Code: "23505"}
	assert.ErrorIs(t, s.Create(ctx, red), ErrExists)

	db.execErr = &pgconn.PgError{Code: "42P01"}
	assert.ErrorContains(t, s.Create(ctx, red), "insert color")
}

func TestPostgresStoreDeleteAndMigrate(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	s := NewPostgresStore(db)

	require.NoError(t, s.Delete(ctx, "red"))
	db.tag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, s.Delete(ctx, "red"), ErrNotFound)

	require.NoError(t, s.Migrate(ctx))
	last := db.execs[len(db.execs)-1]
	assert.True(t, strings.Contains(last.sql, "CREATE TABLE IF NOT EXISTS colors"))

	_, err := s.List(ctx)
	assert.ErrorContains(t, err, "query colors")
}
