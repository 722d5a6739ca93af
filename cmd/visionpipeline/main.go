package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/smartdash/vision/internal/config"
	"github.com/smartdash/vision/internal/extractor"
	"github.com/smartdash/vision/internal/fetch"
	"github.com/smartdash/vision/internal/hub"
	"github.com/smartdash/vision/internal/pipeline"
	"github.com/smartdash/vision/internal/vision"
)

// visionpipeline runs fetch, extract and summarize in one process, wiring
// the stages through the typed pipeline contract instead of shared path
// conventions.
func main() {
	ctx := context.Background()

	outDir := flag.String("out", "frames", "output directory for frames")
	fps := flag.Float64("fps", 2.0, "sampling rate in frames per second")
	maxFrames := flag.Int("max_frames", 12, "maximum number of frames")
	scale := flag.Int("scale", 640, "resize width, keep aspect")
	maxNewTokens := flag.Int("max_new_tokens", 256, "generation cap in new tokens")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      cfg.SlogLevel(),
			TimeFormat: "15:04:05",
		}),
	)

	generator, err := vision.NewOllamaGenerator(cfg.Model, logger)
	if err != nil {
		logger.Error("failed to initialize generator", slog.Any("error", err))
		os.Exit(1)
	}

	p := &pipeline.Pipeline{
		Fetcher: &fetch.Fetcher{
			Hub:         hub.NewClient(cfg.HFToken, cfg.CacheDir, logger),
			DatasetID:   cfg.DatasetID,
			ArchiveName: cfg.ArchiveName,
			VideoDir:    cfg.VideoDir,
			Logger:      logger,
		},
		Sampler:    extractor.New(logger),
		Summarizer: vision.NewSummarizer(generator, logger),
		FramesDir:  *outDir,
		Extract: extractor.Options{
			FPS:       *fps,
			Scale:     *scale,
			MaxFrames: *maxFrames,
		},
		MaxNewTokens: *maxNewTokens,
		Logger:       logger,
	}

	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(summary)
}
