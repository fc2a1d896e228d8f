package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()

	log, err := InitLogger(dir, "movie-review", true)
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "movie-review.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestInitLogger_StdoutOnly(t *testing.T) {
	log, err := InitLogger("", "movie-review", false)
	require.NoError(t, err)
	assert.NotNil(t, log)
}
