// Package hub downloads files from Hugging Face dataset repositories into a
// managed local cache.
package hub

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseURL is the public Hugging Face hub endpoint.
const DefaultBaseURL = "https://huggingface.co"

// Client fetches dataset files over HTTP. A cache hit returns the local
// path without any network I/O, so repeated runs never re-fetch.
type Client struct {
	BaseURL  string
	Token    string
	CacheDir string

	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a hub client. An empty token is valid for public
// datasets. An empty cacheDir falls back to the user cache directory.
func NewClient(token, cacheDir string, logger *slog.Logger) *Client {
	if cacheDir == "" {
		if base, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(base, "smartdash-vision")
		} else {
			cacheDir = filepath.Join(os.TempDir(), "smartdash-vision")
		}
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		CacheDir:   cacheDir,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// DatasetFile resolves repoID/filename to a local path, downloading it into
// the cache first when the cache misses.
func (c *Client) DatasetFile(ctx context.Context, repoID, filename string) (string, error) {
	cached := filepath.Join(c.CacheDir, strings.ReplaceAll(repoID, "/", "--"), filename)

	if _, err := os.Stat(cached); err == nil {
		c.logger.Debug("hub cache hit", slog.String("file", cached))
		return cached, nil
	}

	if err := os.MkdirAll(filepath.Dir(cached), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory '%s': %w", filepath.Dir(cached), err)
	}

	url := fmt.Sprintf("%s/datasets/%s/resolve/main/%s", c.BaseURL, repoID, filename)
	c.logger.Info("downloading dataset file", slog.String("repo", repoID), slog.String("file", filename))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("hub request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hub returned status %d for %s", resp.StatusCode, url)
	}

	// Download to a partial file and rename so an interrupted run never
	// leaves a truncated entry behind as a cache hit.
	part := cached + ".part"
	out, err := os.Create(part)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(part)
		return "", fmt.Errorf("failed to write '%s': %w", part, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(part)
		return "", err
	}

	if err := os.Rename(part, cached); err != nil {
		return "", err
	}

	c.logger.Info("cached dataset file", slog.String("path", cached))
	return cached, nil
}
