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
)

func main() {
	ctx := context.Background()

	videoPath := flag.String("video", "", "path to the input video (required)")
	outDir := flag.String("out", "frames", "output directory for frames")
	fps := flag.Float64("fps", 2.0, "sampling rate in frames per second")
	maxFrames := flag.Int("max_frames", 12, "maximum number of frames to keep")
	scale := flag.Int("scale", 640, "resize width, keep aspect")
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

	if *videoPath == "" {
		fmt.Println("Usage: extractframes --video path/to/video.mp4 [--out frames] [--fps 2.0] [--max_frames 12] [--scale 640]")
		os.Exit(1)
	}

	kept, err := extractor.New(logger).ExtractFrames(ctx, *videoPath, *outDir, extractor.Options{
		FPS:       *fps,
		Scale:     *scale,
		MaxFrames: *maxFrames,
	})
	if err != nil {
		logger.Error("frame extraction failed", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Printf("Extracted %d frames into %s\n", len(kept), *outDir)
}
