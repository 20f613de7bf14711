package jobs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dan9191/gallery-service/internal/models"
	"github.com/Dan9191/gallery-service/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRemovesOrphans(t *testing.T) {
	dir := t.TempDir()
	store := repository.NewMemory()
	require.NoError(t, store.CreateImage(&models.Image{ID: 1, Title: "kept", Filename: "1.jpg"}))

	for _, name := range []string{"1.jpg", "2.png", "42.webp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	// Files without an id prefix are not ours to touch
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644))

	cleaner := NewCleaner(store, dir, logrus.New())
	require.NoError(t, cleaner.Run())

	assert.FileExists(t, filepath.Join(dir, "1.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "2.png"))
	assert.NoFileExists(t, filepath.Join(dir, "42.webp"))
	assert.FileExists(t, filepath.Join(dir, "README.txt"))
}

func TestRunMissingDirIsNoop(t *testing.T) {
	cleaner := NewCleaner(repository.NewMemory(), filepath.Join(t.TempDir(), "nope"), logrus.New())
	assert.NoError(t, cleaner.Run())
}
