package wire

import (
	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Post("/reviews", reviewHandler.CreateReview)

	r.Route("/reviews/{movie_id}", func(r chi.Router) {
		r.Get("/", reviewHandler.GetMovieReviews)
		r.Get("/summary", reviewHandler.GetMovieReviewSummary)
	})
}
