package repository

import (
	"context"
	"sync"
	"time"

	"movie-review/internal/data/entity"

	"go.uber.org/zap"
)

type memoryMovieRepository struct {
	mu     sync.RWMutex
	movies []*entity.Movie
	nextID int64
	log    *zap.Logger
}

func NewMemoryMovieRepository(log *zap.Logger) MovieRepository {
	return &memoryMovieRepository{
		nextID: 1,
		log:    log.With(zap.String("repository", "movie"), zap.String("driver", "memory")),
	}
}

func (r *memoryMovieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie.ID = r.nextID
	movie.CreatedAt = time.Now().UTC()
	r.nextID++

	stored := *movie
	r.movies = append(r.movies, &stored)

	r.log.Debug("Movie stored", zap.Int64("movie_id", movie.ID))
	return nil
}

func (r *memoryMovieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]*entity.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		copied := *m
		movies = append(movies, &copied)
	}
	return movies, nil
}

type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []*entity.Review
	nextID  int64
	log     *zap.Logger
}

func NewMemoryReviewRepository(log *zap.Logger) ReviewRepository {
	return &memoryReviewRepository{
		nextID: 1,
		log:    log.With(zap.String("repository", "review"), zap.String("driver", "memory")),
	}
}

func (r *memoryReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = r.nextID
	review.CreatedAt = time.Now().UTC()
	r.nextID++

	stored := *review
	r.reviews = append(r.reviews, &stored)

	r.log.Debug("Review stored",
		zap.Int64("review_id", review.ID),
		zap.Int64("movie_id", review.MovieID),
	)
	return nil
}

// FindByMovieID scans all reviews; there is no index by movie.
func (r *memoryReviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := []*entity.Review{}
	for _, rv := range r.reviews {
		if rv.MovieID == movieID {
			copied := *rv
			reviews = append(reviews, &copied)
		}
	}
	return reviews, nil
}
