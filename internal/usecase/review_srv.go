package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/sentiment"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	// CreateReview annotates and stores a review. A provider failure does not
	// fail the call; the review is stored with a sentinel label.
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error)

	// Stats
	GetMovieReviewSummary(ctx context.Context, movieID string) (*response.ReviewSummaryResponse, error)
}

type reviewService struct {
	repo      *repository.Repository
	annotator sentiment.Annotator
	log       *zap.Logger
}

func NewReviewService(repo *repository.Repository, annotator sentiment.Annotator, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:      repo,
		annotator: annotator,
		log:       log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// movie_id is not checked against stored movies
	annotation := s.annotator.Annotate(ctx, req.Content)

	review := &entity.Review{
		MovieID:        *req.MovieID,
		UserName:       req.UserName,
		Content:        req.Content,
		Sentiment:      annotation.Label,
		Score:          annotation.Score,
		AnalysisFailed: annotation.Failed,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("movie_id", review.MovieID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("movie_id", review.MovieID),
		zap.String("sentiment", review.Sentiment),
		zap.Float64("score", review.Score),
	)

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string) ([]response.ReviewResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie reviews",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("get movie reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review)
	}

	s.log.Debug("Movie reviews retrieved",
		zap.Int64("movie_id", id),
		zap.Int("count", len(reviews)),
	)

	return reviewResponses, nil
}

func (s *reviewService) GetMovieReviewSummary(ctx context.Context, movieID string) (*response.ReviewSummaryResponse, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie reviews for summary",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("get movie review summary: %w", err)
	}

	summary := summarize(id, reviews)
	summaryResp := response.SummaryToResponse(summary)
	return &summaryResp, nil
}

// summarize counts labels. Reviews whose analysis failed are left out of the
// average; free-text labels from generative backends count toward total and
// average but not toward positive or negative.
func summarize(movieID int64, reviews []*entity.Review) *entity.ReviewSummary {
	summary := &entity.ReviewSummary{MovieID: movieID, Total: len(reviews)}

	var sum float64
	classified := 0
	for _, review := range reviews {
		switch {
		case review.AnalysisFailed:
			summary.Failed++
			continue
		case strings.EqualFold(review.Sentiment, sentiment.LabelPositive):
			summary.Positive++
		case strings.EqualFold(review.Sentiment, sentiment.LabelNegative):
			summary.Negative++
		}
		sum += review.Score
		classified++
	}

	if classified > 0 {
		summary.AverageScore = math.Round(sum/float64(classified)*100) / 100
	}
	return summary
}

func parseMovieID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid movie ID format %s: %w", raw, err)
	}
	return id, nil
}
