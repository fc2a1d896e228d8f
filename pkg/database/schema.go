package database

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS movies (
	id         BIGSERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	director   TEXT NOT NULL,
	genre      TEXT NOT NULL,
	poster_url TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reviews (
	id         BIGSERIAL PRIMARY KEY,
	movie_id   BIGINT NOT NULL,
	user_name  TEXT NOT NULL,
	content    TEXT NOT NULL,
	sentiment  TEXT NOT NULL,
	score      DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

ALTER TABLE reviews ADD COLUMN IF NOT EXISTS analysis_failed BOOLEAN NOT NULL DEFAULT FALSE;

CREATE INDEX IF NOT EXISTS idx_reviews_movie_id ON reviews (movie_id, id);
`

// EnsureSchema creates the tables if they do not exist yet. reviews.movie_id
// carries no foreign key: reviews may name movies that were never registered.
func EnsureSchema(ctx context.Context, db PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
