package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/smartdash/vision/internal/config"
	"github.com/smartdash/vision/internal/embeddings"
	"github.com/smartdash/vision/internal/frames"
	"github.com/smartdash/vision/internal/models"
	"github.com/smartdash/vision/internal/storage"
	"github.com/smartdash/vision/internal/vision"
)

func main() {
	ctx := context.Background()

	frameDir := flag.String("frames", "frames", "directory holding the extracted frames")
	maxFrames := flag.Int("max_frames", 12, "maximum number of frames to feed the model")
	maxNewTokens := flag.Int("max_new_tokens", 256, "generation cap in new tokens")
	describe := flag.Bool("describe", false, "also write a per-frame description file")
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

	summarizer := vision.NewSummarizer(generator, logger)
	summary, err := summarizer.SummarizeFrames(ctx, *frameDir, *maxFrames, *maxNewTokens)
	if err != nil {
		logger.Error("summarization failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(summary)

	if *describe {
		if err := describeFrames(ctx, cfg, logger, *frameDir, *maxFrames); err != nil {
			logger.Error("per-frame description failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if cfg.DatabaseURL != "" {
		if err := archiveSummary(ctx, cfg, logger, *frameDir, *maxFrames, summary); err != nil {
			logger.Error("failed to archive summary", slog.Any("error", err))
			os.Exit(1)
		}
	}
}

func describeFrames(ctx context.Context, cfg *config.Config, logger *slog.Logger, frameDir string, maxFrames int) error {
	paths, err := frames.List(frameDir)
	if err != nil {
		return err
	}
	if len(paths) > maxFrames {
		paths = paths[:maxFrames]
	}

	visionAgent, err := vision.NewFrameAgent(ctx, cfg.OllamaBaseURL, cfg.OllamaPort, cfg.Model, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize vision agent: %w", err)
	}

	store := storage.NewJSONStore(frameDir)
	describer := vision.NewDescriber(visionAgent, store, logger)
	return describer.DescribeFrames(ctx, paths)
}

func archiveSummary(ctx context.Context, cfg *config.Config, logger *slog.Logger, frameDir string, maxFrames int, summary string) error {
	paths, err := frames.List(frameDir)
	if err != nil {
		return err
	}
	frameCount := len(paths)
	if frameCount > maxFrames {
		frameCount = maxFrames
	}

	archive, err := storage.NewSummaryArchive(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer archive.Close()

	embedder, err := embeddings.NewOllamaEmbedder(cfg.EmbedModel)
	if err != nil {
		return err
	}

	service := embeddings.NewService(embedder, 2)
	defer service.Close()

	result := <-service.GetEmbedding(summary)
	if result.Error != nil {
		logger.Warn("embedding generation failed, archiving without it", slog.Any("error", result.Error))
	}

	rec := models.IncidentSummary{
		Video:      frameDir,
		Model:      cfg.Model,
		FrameCount: frameCount,
		Summary:    summary,
		CreatedAt:  time.Now(),
	}
	if err := archive.Save(ctx, rec, result.Embedding); err != nil {
		return err
	}

	if len(result.Embedding) == 0 {
		return nil
	}

	similar, err := archive.SearchSimilar(ctx, result.Embedding, 4)
	if err != nil {
		return err
	}
	for _, match := range similar {
		if match.Summary == summary {
			continue
		}
		fmt.Printf("\nSimilar prior incident (%.2f): %s\n", match.Similarity, match.Video)
	}
	return nil
}
