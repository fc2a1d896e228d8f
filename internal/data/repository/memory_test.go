package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
)

func TestMemoryMovieRepository_SequentialIDs(t *testing.T) {
	repo := repository.NewMemoryRepository(zap.NewNop()).Movie
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		m := &entity.Movie{Title: fmt.Sprintf("movie %d", i)}
		require.NoError(t, repo.Create(ctx, m))
		assert.Equal(t, last+1, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
		last = m.ID
	}

	movies, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 5)
	for i, m := range movies {
		assert.Equal(t, int64(i+1), m.ID)
		assert.Equal(t, fmt.Sprintf("movie %d", i), m.Title)
	}
}

func TestMemoryMovieRepository_EmptyAndIdempotent(t *testing.T) {
	repo := repository.NewMemoryMovieRepository(zap.NewNop())
	ctx := context.Background()

	movies, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)

	require.NoError(t, repo.Create(ctx, &entity.Movie{Title: "A"}))
	first, _ := repo.FindAll(ctx)
	second, _ := repo.FindAll(ctx)
	assert.Equal(t, first, second)
}

func TestMemoryMovieRepository_StoredCopyIsIsolated(t *testing.T) {
	repo := repository.NewMemoryMovieRepository(zap.NewNop())
	ctx := context.Background()

	m := &entity.Movie{Title: "Original"}
	require.NoError(t, repo.Create(ctx, m))
	m.Title = "Changed"

	movies, _ := repo.FindAll(ctx)
	movies[0].Director = "Someone"

	again, _ := repo.FindAll(ctx)
	assert.Equal(t, "Original", again[0].Title)
	assert.Empty(t, again[0].Director)
}

func TestMemoryMovieRepository_ConcurrentCreate(t *testing.T) {
	repo := repository.NewMemoryMovieRepository(zap.NewNop())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Create(ctx, &entity.Movie{Title: "x"})
		}()
	}
	wg.Wait()

	movies, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, movies, n)
	seen := map[int64]bool{}
	for _, m := range movies {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[n])
}

func TestMemoryReviewRepository_FilterPreservesOrder(t *testing.T) {
	repo := repository.NewMemoryReviewRepository(zap.NewNop())
	ctx := context.Background()

	submit := []struct {
		movieID int64
		content string
	}{
		{1, "first for one"},
		{2, "first for two"},
		{1, "second for one"},
		{3, "only for three"},
		{1, "third for one"},
	}
	for _, s := range submit {
		require.NoError(t, repo.Create(ctx, &entity.Review{MovieID: s.movieID, Content: s.content, Sentiment: "Positive", Score: 90}))
	}

	reviews, err := repo.FindByMovieID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "first for one", reviews[0].Content)
	assert.Equal(t, "second for one", reviews[1].Content)
	assert.Equal(t, "third for one", reviews[2].Content)
	for _, r := range reviews {
		assert.Equal(t, int64(1), r.MovieID)
	}

	none, err := repo.FindByMovieID(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
