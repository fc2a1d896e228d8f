package usecase

import (
	"movie-review/internal/data/repository"
	"movie-review/internal/sentiment"

	"go.uber.org/zap"
)

type Service struct {
	Movie  MovieService
	Review ReviewService
}

func NewService(repo *repository.Repository, annotator sentiment.Annotator, log *zap.Logger) *Service {
	return &Service{
		Movie:  NewMovieService(repo, log),
		Review: NewReviewService(repo, annotator, log),
	}
}
