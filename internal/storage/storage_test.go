package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartdash/vision/internal/models"
)

func readDescriptions(t *testing.T, dir string) []models.FrameDescription {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "descriptions.json"))
	require.NoError(t, err)

	var results []models.FrameDescription
	require.NoError(t, json.Unmarshal(data, &results))
	return results
}

func TestJSONStoreFlushWritesResults(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	require.NoError(t, store.AddResult(models.FrameDescription{Frame: "0001.jpg", Content: "a road"}))
	require.NoError(t, store.AddResult(models.FrameDescription{Frame: "0002.jpg", Content: "a junction"}))
	require.NoError(t, store.Flush())

	results := readDescriptions(t, dir)
	require.Len(t, results, 2)
	assert.Equal(t, "0001.jpg", results[0].Frame)
	assert.Equal(t, "a junction", results[1].Content)
}

func TestJSONStoreMergesWithExistingFile(t *testing.T) {
	dir := t.TempDir()

	store := NewJSONStore(dir)
	require.NoError(t, store.AddResult(models.FrameDescription{Frame: "0001.jpg", Content: "first run"}))
	require.NoError(t, store.Flush())

	second := NewJSONStore(dir)
	require.NoError(t, second.AddResult(models.FrameDescription{Frame: "0002.jpg", Content: "second run"}))
	require.NoError(t, second.Flush())

	results := readDescriptions(t, dir)
	require.Len(t, results, 2)
	assert.Equal(t, "first run", results[0].Content)
	assert.Equal(t, "second run", results[1].Content)
}

func TestJSONStoreAutoFlushesFullBatch(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	for i := 0; i < batchSize; i++ {
		require.NoError(t, store.AddResult(models.FrameDescription{
			Frame:   fmt.Sprintf("%04d.jpg", i+1),
			Content: "frame",
		}))
	}

	// The batch threshold was reached, so the file exists before Flush.
	results := readDescriptions(t, dir)
	assert.Len(t, results, batchSize)
}

func TestJSONStoreFlushWithoutResultsIsNoop(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	require.NoError(t, store.Flush())
	assert.NoFileExists(t, filepath.Join(dir, "descriptions.json"))
}
