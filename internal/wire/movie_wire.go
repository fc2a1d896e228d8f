package wire

import (
	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Get("/movies", movieHandler.GetMovies)
	r.Post("/movies", movieHandler.CreateMovie)
}
