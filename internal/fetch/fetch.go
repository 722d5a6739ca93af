// Package fetch materializes the canonical sample video from a remote
// dataset archive.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/smartdash/vision/internal/archive"
	"github.com/smartdash/vision/internal/hub"
)

// CanonicalName is the stable filename the selected video is copied to.
const CanonicalName = "sample.mp4"

// Fetcher downloads the dataset archive and extracts one video from it.
type Fetcher struct {
	Hub         *hub.Client
	DatasetID   string
	ArchiveName string
	VideoDir    string
	Logger      *slog.Logger
}

// FetchSample runs the whole fetch step and returns the canonical video
// path. The hub download is cached and the local archive copy is only
// written when absent, so re-runs touch neither.
func (f *Fetcher) FetchSample(ctx context.Context) (string, error) {
	if err := os.MkdirAll(f.VideoDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create video directory '%s': %w", f.VideoDir, err)
	}

	cached, err := f.Hub.DatasetFile(ctx, f.DatasetID, f.ArchiveName)
	if err != nil {
		return "", err
	}

	localTar := filepath.Join(f.VideoDir, f.ArchiveName)
	if _, err := os.Stat(localTar); os.IsNotExist(err) {
		if err := copyFile(cached, localTar); err != nil {
			return "", err
		}
		f.Logger.Info("saved archive", slog.String("path", localTar))
	} else {
		f.Logger.Info("archive already present, keeping existing copy", slog.String("path", localTar))
	}

	samplePath, err := archive.ExtractSampleVideo(localTar, f.VideoDir, CanonicalName)
	if err != nil {
		return "", err
	}

	f.Logger.Info("sample video ready", slog.String("path", samplePath))
	return samplePath, nil
}

// copyFile writes through a .part file so an interrupted copy never leaves
// a truncated archive at the final path.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open '%s': %w", src, err)
	}
	defer in.Close()

	part := dst + ".part"
	out, err := os.Create(part)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(part)
		return fmt.Errorf("failed to copy '%s' to '%s': %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(part)
		return err
	}
	return os.Rename(part, dst)
}
