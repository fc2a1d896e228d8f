package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /reviews. Always 200 for a valid body: failed
// analysis shows up in the sentiment field, not the status.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReviewRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseOK(w, review)
}

// GetMovieReviews handles GET /reviews/{movie_id}
func (h *ReviewHandler) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movie_id")

	reviews, err := h.service.GetMovieReviews(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie reviews")
		return
	}

	utils.ResponseOK(w, reviews)
}

// GetMovieReviewSummary handles GET /reviews/{movie_id}/summary
func (h *ReviewHandler) GetMovieReviewSummary(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movie_id")

	summary, err := h.service.GetMovieReviewSummary(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie review summary")
		return
	}

	utils.ResponseOK(w, summary)
}
