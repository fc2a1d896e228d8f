package request

type CreateReviewRequest struct {
	MovieID  *int64 `json:"movie_id" validate:"required"` // any integer, only absence is rejected
	UserName string `json:"user_name" validate:"required,max=100"`
	Content  string `json:"content" validate:"required,max=5000"`
}
