// Package extractor samples a video into numbered JPEG frames with the
// external ffmpeg tool.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/smartdash/vision/internal/frames"
)

// Runner executes the external media tool. Tests substitute a fake so no
// ffmpeg binary is needed.
type Runner interface {
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Options tune one extraction run.
type Options struct {
	FPS       float64 // sampling rate in frames per second
	Scale     int     // output width in pixels, aspect preserved
	MaxFrames int     // frames kept after truncation
}

// Extractor drives ffmpeg and enforces the frame cap.
type Extractor struct {
	runner Runner
	logger *slog.Logger
}

// New returns an Extractor backed by the real ffmpeg binary.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{runner: execRunner{}, logger: logger}
}

// NewWithRunner returns an Extractor with a substituted tool runner.
func NewWithRunner(runner Runner, logger *slog.Logger) *Extractor {
	return &Extractor{runner: runner, logger: logger}
}

// ExtractFrames samples videoPath into zero-padded numbered JPEGs under
// outputDir, then deletes every frame beyond opts.MaxFrames in sorted
// order, leaving exactly min(produced, max) stills. ffmpeg extracts the
// full sequence first, so disk usage can briefly exceed the cap.
func (e *Extractor) ExtractFrames(ctx context.Context, videoPath, outputDir string, opts Options) ([]string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("video file does not exist at path: '%s'", videoPath)
		}
		return nil, fmt.Errorf("failed to stat video '%s': %w", videoPath, err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	if duration, err := probeDuration(videoPath); err != nil {
		e.logger.Warn("could not probe video duration", slog.Any("error", err))
	} else {
		e.logger.Info("probed video",
			slog.String("path", videoPath),
			slog.Float64("duration_secs", duration),
		)
	}

	pattern := filepath.Join(outputDir, "%04d.jpg")
	args := []string{
		"-y",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%g,scale=%d:-1", opts.FPS, opts.Scale),
		pattern,
	}

	e.logger.Info("extracting frames",
		slog.String("video", videoPath),
		slog.String("out", outputDir),
		slog.Float64("fps", opts.FPS),
		slog.Int("scale", opts.Scale),
	)

	output, err := e.runner.CombinedOutput(ctx, "ffmpeg", args...)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w\noutput: %s", err, string(output))
	}

	produced, err := frames.List(outputDir)
	if err != nil {
		return nil, err
	}
	if len(produced) == 0 {
		return nil, fmt.Errorf("no frames extracted from '%s', check the ffmpeg install and input video", videoPath)
	}

	// The cap is enforced by deleting surplus outputs rather than limiting
	// extraction up front.
	if len(produced) > opts.MaxFrames {
		for _, surplus := range produced[opts.MaxFrames:] {
			if err := os.Remove(surplus); err != nil {
				return nil, fmt.Errorf("failed to remove surplus frame '%s': %w", surplus, err)
			}
		}
		produced = produced[:opts.MaxFrames]
	}

	e.logger.Info("extracted frames", slog.Int("count", len(produced)), slog.String("out", outputDir))
	return produced, nil
}

func probeDuration(videoPath string) (float64, error) {
	raw, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &probed); err != nil {
		return 0, fmt.Errorf("parse probe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return duration, nil
}
