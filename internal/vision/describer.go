package vision

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/smartdash/vision/internal/models"
	"github.com/smartdash/vision/internal/storage"
)

const maxWorkers = 4 // Adjust based on your CPU cores

// Describer runs one description request per frame through a bounded
// worker pool and batches the results into a store.
type Describer struct {
	agent  FrameAgent
	store  storage.ResultStore
	logger *slog.Logger
}

func NewDescriber(a FrameAgent, store storage.ResultStore, logger *slog.Logger) *Describer {
	return &Describer{
		agent:  a,
		store:  store,
		logger: logger,
	}
}

// DescribeFrames describes every frame path, in any completion order, and
// flushes the store when done. Individual frame failures are collected and
// reported together after the pool drains.
func (d *Describer) DescribeFrames(ctx context.Context, framePaths []string) error {
	if len(framePaths) == 0 {
		return fmt.Errorf("no frames to describe")
	}

	workChan := make(chan models.WorkItem, len(framePaths))
	resultsChan := make(chan models.FrameDescription, len(framePaths))
	errorsChan := make(chan error, len(framePaths))

	var wg sync.WaitGroup

	remaining := atomic.Int64{}
	remaining.Store(int64(len(framePaths)))

	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for work := range workChan {
				content, err := d.agent.Describe(ctx, framePrompt, work.FramePath)
				if err != nil {
					errorsChan <- fmt.Errorf("frame %d/%d failed: %w", work.FrameNum, work.Total, err)
					continue
				}

				resultsChan <- models.FrameDescription{
					Frame:   filepath.Base(work.FramePath),
					Content: content,
				}

				d.logger.Debug("described frame",
					slog.String("frame", filepath.Base(work.FramePath)),
					slog.Int64("remaining", remaining.Add(-1)),
				)
			}
		}()
	}

	go func() {
		for i, path := range framePaths {
			workChan <- models.WorkItem{
				FramePath: path,
				FrameNum:  i + 1,
				Total:     len(framePaths),
			}
		}
		close(workChan)
	}()

	var storeWg sync.WaitGroup
	storeWg.Add(1)
	go func() {
		defer storeWg.Done()
		for result := range resultsChan {
			if err := d.store.AddResult(result); err != nil {
				d.logger.Error("failed to store description", slog.Any("error", err))
			}
		}
	}()

	wg.Wait()
	close(resultsChan)
	close(errorsChan)
	storeWg.Wait()

	if err := d.store.Flush(); err != nil {
		return fmt.Errorf("failed to flush final results: %w", err)
	}

	var errorMessages []string
	for err := range errorsChan {
		errorMessages = append(errorMessages, err.Error())
	}
	if len(errorMessages) > 0 {
		return fmt.Errorf("encountered errors during description: %v", strings.Join(errorMessages, "; "))
	}

	return nil
}
