// Package pipeline composes the three stages in-process through an
// explicit typed contract instead of implied path conventions.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/smartdash/vision/internal/extractor"
)

// Fetcher produces the canonical sample video and returns its path.
type Fetcher interface {
	FetchSample(ctx context.Context) (string, error)
}

// Sampler extracts frames from a video into a directory.
type Sampler interface {
	ExtractFrames(ctx context.Context, videoPath, outputDir string, opts extractor.Options) ([]string, error)
}

// Summarizer generates text from the frames in a directory.
type Summarizer interface {
	SummarizeFrames(ctx context.Context, frameDir string, maxFrames, maxNewTokens int) (string, error)
}

// Pipeline names every path and tunable the stages hand to each other.
type Pipeline struct {
	Fetcher    Fetcher
	Sampler    Sampler
	Summarizer Summarizer

	FramesDir    string
	Extract      extractor.Options
	MaxNewTokens int

	Logger *slog.Logger
}

// Run executes fetch, extract and summarize in order and returns the
// summary text. The first stage error aborts the run.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	videoPath, err := p.Fetcher.FetchSample(ctx)
	if err != nil {
		return "", err
	}

	extracted, err := p.Sampler.ExtractFrames(ctx, videoPath, p.FramesDir, p.Extract)
	if err != nil {
		return "", err
	}
	p.Logger.Info("pipeline extracted frames", slog.Int("count", len(extracted)))

	return p.Summarizer.SummarizeFrames(ctx, p.FramesDir, p.Extract.MaxFrames, p.MaxNewTokens)
}
