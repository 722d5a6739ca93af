// Package frames enumerates and loads the JPEG stills a run produces.
package frames

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
)

// Frame is one loaded still image.
type Frame struct {
	Path   string
	Data   []byte
	Width  int
	Height int
}

// List returns the JPEG frames under dir sorted by name. Name order matches
// capture-time order for ffmpeg's zero-padded numbered outputs.
func List(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.jpg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads up to max frames from dir, earliest first, verifying each one
// decodes as a JPEG. Zero frames is an error.
func Load(dir string, max int) ([]Frame, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames found in '%s' (expected *.jpg)", dir)
	}
	if len(paths) > max {
		paths = paths[:max]
	}

	loaded := make([]Frame, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame '%s': %w", path, err)
		}
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("frame '%s' is not a valid JPEG: %w", path, err)
		}
		loaded = append(loaded, Frame{
			Path:   path,
			Data:   data,
			Width:  cfg.Width,
			Height: cfg.Height,
		})
	}
	return loaded, nil
}
