package frames

import (
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}

func TestLoadSortsAndCaps(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, dir, "0003.jpg")
	writeJPEG(t, dir, "0001.jpg")
	writeJPEG(t, dir, "0002.jpg")

	loaded, err := Load(dir, 2)
	require.NoError(t, err)

	require.Len(t, loaded, 2)
	assert.Equal(t, filepath.Join(dir, "0001.jpg"), loaded[0].Path)
	assert.Equal(t, filepath.Join(dir, "0002.jpg"), loaded[1].Path)
	assert.Equal(t, 2, loaded[0].Width)
	assert.Equal(t, 2, loaded[0].Height)
}

func TestLoadFailsOnEmptyDirectory(t *testing.T) {
	_, err := Load(t.TempDir(), 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no frames found")
}

func TestLoadIgnoresNonJPEGFiles(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, dir, "0001.jpg")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	loaded, err := Load(dir, 12)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestLoadRejectsCorruptJPEG(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001.jpg"), []byte("not a jpeg"), 0644))

	_, err := Load(dir, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JPEG")
}

func TestListReturnsSortedNames(t *testing.T) {
	dir := t.TempDir()
	writeJPEG(t, dir, "0010.jpg")
	writeJPEG(t, dir, "0002.jpg")

	paths, err := List(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "0002.jpg"), paths[0])
}
