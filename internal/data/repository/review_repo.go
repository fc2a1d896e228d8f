package repository

import (
	"context"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"go.uber.org/zap"
)

type ReviewRepository interface {
	// Create stores an already annotated review and assigns its id.
	Create(ctx context.Context, review *entity.Review) error
	// FindByMovieID returns the reviews of one movie in submission order.
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Review, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (movie_id, user_name, content, sentiment, score, analysis_failed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		review.MovieID,
		review.UserName,
		review.Content,
		review.Sentiment,
		review.Score,
		review.AnalysisFailed,
	).Scan(&review.ID, &review.CreatedAt)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %d: %w", review.MovieID, err)
	}

	return nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Review, error) {
	query := `
		SELECT id, movie_id, user_name, content, sentiment, score, analysis_failed, created_at
		FROM reviews
		WHERE movie_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	reviews := []*entity.Review{}
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.MovieID,
			&review.UserName,
			&review.Content,
			&review.Sentiment,
			&review.Score,
			&review.AnalysisFailed,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
