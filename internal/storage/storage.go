// Package storage persists per-frame descriptions and archived summaries.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/smartdash/vision/internal/models"
)

const batchSize = 10 // Number of results to batch write

// ResultStore receives per-frame descriptions.
type ResultStore interface {
	// AddResult adds a single description
	AddResult(result models.FrameDescription) error

	// Flush ensures all pending results are saved
	Flush() error
}

// JSONStore batches descriptions and merges them into a JSON file beside
// the frames.
type JSONStore struct {
	mu      sync.Mutex
	results []models.FrameDescription
	path    string
}

// NewJSONStore writes descriptions.json under dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{
		path: filepath.Join(dir, "descriptions.json"),
	}
}

// AddResult adds a result to the batch and flushes when the batch is full.
func (s *JSONStore) AddResult(result models.FrameDescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)

	if len(s.results) >= batchSize {
		return s.flush()
	}
	return nil
}

// Flush writes all pending results to disk.
func (s *JSONStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func (s *JSONStore) flush() error {
	if len(s.results) == 0 {
		return nil
	}

	var existing []models.FrameDescription
	if data, err := os.ReadFile(s.path); err == nil {
		if err := json.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("failed to unmarshal existing results: %w", err)
		}
	}

	all := append(existing, s.results...)

	file, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(all); err != nil {
		return err
	}

	s.results = nil
	return nil
}
