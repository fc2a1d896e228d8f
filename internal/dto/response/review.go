package response

import (
	"time"

	"movie-review/internal/data/entity"
)

type ReviewResponse struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewSummaryResponse struct {
	MovieID      int64   `json:"movie_id"`
	Total        int     `json:"total"`
	Positive     int     `json:"positive"`
	Negative     int     `json:"negative"`
	Failed       int     `json:"failed"`
	AverageScore float64 `json:"average_score"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		MovieID:   review.MovieID,
		UserName:  review.UserName,
		Content:   review.Content,
		Sentiment: review.Sentiment,
		Score:     review.Score,
		CreatedAt: review.CreatedAt,
	}
}

func SummaryToResponse(summary *entity.ReviewSummary) ReviewSummaryResponse {
	return ReviewSummaryResponse{
		MovieID:      summary.MovieID,
		Total:        summary.Total,
		Positive:     summary.Positive,
		Negative:     summary.Negative,
		Failed:       summary.Failed,
		AverageScore: summary.AverageScore,
	}
}
