package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-review/internal/dto/request"
)

func TestCreateMovie_SequentialIDs(t *testing.T) {
	svc := newTestService(&fixedAnnotator{})
	ctx := context.Background()

	first, err := svc.Movie.CreateMovie(ctx, &request.MovieRequest{Title: "Parasite", Director: "Bong Joon-ho", Genre: "Thriller", PosterURL: "p1.jpg"})
	require.NoError(t, err)
	second, err := svc.Movie.CreateMovie(ctx, &request.MovieRequest{Title: "Oldboy", Director: "Park Chan-wook", Genre: "Thriller", PosterURL: "p2.jpg"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "Bong Joon-ho", first.Director)

	movies, err := svc.Movie.GetMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "Parasite", movies[0].Title)
	assert.Equal(t, "Oldboy", movies[1].Title)
}

func TestCreateMovie_ValidationFailed(t *testing.T) {
	svc := newTestService(&fixedAnnotator{})

	_, err := svc.Movie.CreateMovie(context.Background(), &request.MovieRequest{Title: "No director"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	movies, err := svc.Movie.GetMovies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, movies)
}
