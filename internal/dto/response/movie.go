package response

import (
	"movie-review/internal/data/entity"
)

type MovieResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Director  string `json:"director"`
	Genre     string `json:"genre"`
	PosterURL string `json:"poster_url"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:        movie.ID,
		Title:     movie.Title,
		Director:  movie.Director,
		Genre:     movie.Genre,
		PosterURL: movie.PosterURL,
	}
}

type HomeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
