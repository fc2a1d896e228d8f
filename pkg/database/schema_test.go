package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execRecorder struct {
	sql string
	err error
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (e *execRecorder) Close()                                                  {}

func (e *execRecorder) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql = sql
	return pgconn.CommandTag{}, e.err
}

func TestEnsureSchema(t *testing.T) {
	db := &execRecorder{}
	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.Contains(t, db.sql, "CREATE TABLE IF NOT EXISTS movies")
	assert.Contains(t, db.sql, "CREATE TABLE IF NOT EXISTS reviews")
	assert.Contains(t, db.sql, "analysis_failed BOOLEAN")
	assert.NotContains(t, db.sql, "REFERENCES")
}

func TestEnsureSchema_Error(t *testing.T) {
	err := EnsureSchema(context.Background(), &execRecorder{err: errors.New("permission denied")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure schema")
}
