package request

type MovieRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Director  string `json:"director" validate:"required,max=200"`
	Genre     string `json:"genre" validate:"required,max=100"`
	PosterURL string `json:"poster_url" validate:"required,max=2048"`
}
