// Package vision turns extracted frames into safety-filtered text with a
// local multimodal model.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/smartdash/vision/internal/frames"
)

// Generator produces text from a prompt and an ordered set of images. It is
// the seam for substituting alternate model backends, including fakes in
// tests.
type Generator interface {
	Generate(ctx context.Context, prompt string, images [][]byte, maxNewTokens int) (string, error)
}

// OllamaGenerator sends a single multi-image chat request to Ollama.
type OllamaGenerator struct {
	client *api.Client
	model  string
	logger *slog.Logger
}

// NewOllamaGenerator resolves the Ollama endpoint from the environment
// (OLLAMA_HOST) the same way the ollama CLI does.
func NewOllamaGenerator(model string, logger *slog.Logger) (*OllamaGenerator, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaGenerator{client: client, model: model, logger: logger}, nil
}

// Generate runs one non-streamed generation capped at maxNewTokens new
// tokens. The chat endpoint returns only generated tokens, so no input
// prefix needs slicing off.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string, images [][]byte, maxNewTokens int) (string, error) {
	imgs := make([]api.ImageData, len(images))
	for i, data := range images {
		imgs[i] = api.ImageData(data)
	}

	stream := false
	req := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: prompt,
				Images:  imgs,
			},
		},
		Stream: &stream,
		Options: map[string]any{
			"num_predict": maxNewTokens,
		},
	}

	var sb strings.Builder
	err := g.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no response content received from model")
	}
	return text, nil
}

// Summarizer loads a capped frame sequence and asks the Generator for one
// summary over all of it.
type Summarizer struct {
	gen    Generator
	logger *slog.Logger
}

func NewSummarizer(gen Generator, logger *slog.Logger) *Summarizer {
	return &Summarizer{gen: gen, logger: logger}
}

// SummarizeFrames builds a single request from the safety prompt followed by
// up to maxFrames images in capture order and returns the generated text.
func (s *Summarizer) SummarizeFrames(ctx context.Context, frameDir string, maxFrames, maxNewTokens int) (string, error) {
	loaded, err := frames.Load(frameDir, maxFrames)
	if err != nil {
		return "", err
	}

	images := make([][]byte, len(loaded))
	for i, frame := range loaded {
		images[i] = frame.Data
	}

	s.logger.Info("generating summary",
		slog.Int("frames", len(images)),
		slog.Int("max_new_tokens", maxNewTokens),
	)

	return s.gen.Generate(ctx, SafetyPrompt, images, maxNewTokens)
}
