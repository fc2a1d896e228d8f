package repository

import (
	"movie-review/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie  MovieRepository
	Review ReviewRepository
}

// NewRepository returns the Postgres-backed store.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:  NewMovieRepository(db, log),
		Review: NewReviewRepository(db, log),
	}
}

// NewMemoryRepository returns a store that lives as long as the process.
func NewMemoryRepository(log *zap.Logger) *Repository {
	return &Repository{
		Movie:  NewMemoryMovieRepository(log),
		Review: NewMemoryReviewRepository(log),
	}
}
