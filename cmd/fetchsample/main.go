package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/smartdash/vision/internal/config"
	"github.com/smartdash/vision/internal/fetch"
	"github.com/smartdash/vision/internal/hub"
)

func main() {
	ctx := context.Background()

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

	fetcher := &fetch.Fetcher{
		Hub:         hub.NewClient(cfg.HFToken, cfg.CacheDir, logger),
		DatasetID:   cfg.DatasetID,
		ArchiveName: cfg.ArchiveName,
		VideoDir:    cfg.VideoDir,
		Logger:      logger,
	}

	samplePath, err := fetcher.FetchSample(ctx)
	if err != nil {
		logger.Error("fetch failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("Ready: %s\n", samplePath)
}
