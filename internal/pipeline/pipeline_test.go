package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartdash/vision/internal/extractor"
)

type fakeFetcher struct {
	path string
	err  error
}

func (f *fakeFetcher) FetchSample(ctx context.Context) (string, error) {
	return f.path, f.err
}

type fakeSampler struct {
	called   bool
	gotVideo string
	gotOut   string
	gotOpts  extractor.Options
	err      error
}

func (f *fakeSampler) ExtractFrames(ctx context.Context, videoPath, outputDir string, opts extractor.Options) ([]string, error) {
	f.called = true
	f.gotVideo = videoPath
	f.gotOut = outputDir
	f.gotOpts = opts
	if f.err != nil {
		return nil, f.err
	}
	return []string{"0001.jpg", "0002.jpg"}, nil
}

type fakeSummarizer struct {
	called bool
	gotDir string
	gotMax int
}

func (f *fakeSummarizer) SummarizeFrames(ctx context.Context, frameDir string, maxFrames, maxNewTokens int) (string, error) {
	f.called = true
	f.gotDir = frameDir
	f.gotMax = maxFrames
	return "- something happened", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunThreadsArtifactsBetweenStages(t *testing.T) {
	sampler := &fakeSampler{}
	summarizer := &fakeSummarizer{}

	p := &Pipeline{
		Fetcher:      &fakeFetcher{path: "videos/sample.mp4"},
		Sampler:      sampler,
		Summarizer:   summarizer,
		FramesDir:    "frames",
		Extract:      extractor.Options{FPS: 2.0, Scale: 640, MaxFrames: 12},
		MaxNewTokens: 256,
		Logger:       testLogger(),
	}

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "- something happened", summary)

	assert.Equal(t, "videos/sample.mp4", sampler.gotVideo)
	assert.Equal(t, "frames", sampler.gotOut)
	assert.Equal(t, 12, sampler.gotOpts.MaxFrames)

	assert.Equal(t, "frames", summarizer.gotDir)
	assert.Equal(t, 12, summarizer.gotMax)
}

func TestRunAbortsOnFetchError(t *testing.T) {
	sampler := &fakeSampler{}
	p := &Pipeline{
		Fetcher:    &fakeFetcher{err: errors.New("hub unreachable")},
		Sampler:    sampler,
		Summarizer: &fakeSummarizer{},
		FramesDir:  "frames",
		Logger:     testLogger(),
	}

	_, err := p.Run(context.Background())
	require.ErrorContains(t, err, "hub unreachable")
	assert.False(t, sampler.called)
}

func TestRunAbortsOnExtractionError(t *testing.T) {
	summarizer := &fakeSummarizer{}
	p := &Pipeline{
		Fetcher:    &fakeFetcher{path: "videos/sample.mp4"},
		Sampler:    &fakeSampler{err: errors.New("ffmpeg failed")},
		Summarizer: summarizer,
		FramesDir:  "frames",
		Logger:     testLogger(),
	}

	_, err := p.Run(context.Background())
	require.ErrorContains(t, err, "ffmpeg failed")
	assert.False(t, summarizer.called)
}
