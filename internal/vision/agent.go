package vision

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/agent-api/core"
	"github.com/agent-api/core/agent"
	"github.com/agent-api/core/agent/bootstrap"
	"github.com/agent-api/ollama"
	"github.com/go-logr/logr"
)

// FrameAgent issues one description request for a single image. It is the
// seam for substituting the model-backed agent in tests.
type FrameAgent interface {
	Describe(ctx context.Context, input, imagePath string) (string, error)
}

// ollamaAgent adapts the agent-api vision agent to FrameAgent.
type ollamaAgent struct {
	agent *agent.Agent
}

// NewFrameAgent initializes the vision agent used for per-frame
// descriptions.
func NewFrameAgent(ctx context.Context, baseURL string, port int, modelID string, logger *slog.Logger) (FrameAgent, error) {
	// Check that Ollama is reachable before building the provider.
	resp, err := http.Get(fmt.Sprintf("%s:%d/api/tags", baseURL, port))
	if err != nil {
		return nil, fmt.Errorf("ollama is not reachable at %s:%d: %w", baseURL, port, err)
	}
	resp.Body.Close()

	logrLogger := logr.FromSlogHandler(logger.Handler())

	provider := ollama.NewProvider(&ollama.ProviderOpts{
		Logger:  &logrLogger,
		BaseURL: baseURL,
		Port:    port,
	})
	provider.UseModel(ctx, &core.Model{
		ID: modelID,
	})

	a, err := agent.NewAgent(
		bootstrap.WithProvider(provider),
		bootstrap.WithSystemPrompt(describerSystemPrompt),
		bootstrap.WithLogger(&logrLogger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize agent: %w", err)
	}

	return &ollamaAgent{agent: a}, nil
}

func (o *ollamaAgent) Describe(ctx context.Context, input, imagePath string) (string, error) {
	aggregator, err := o.agent.Run(
		ctx,
		agent.WithInput(input),
		agent.WithImagePath(imagePath),
	)
	if err != nil {
		return "", err
	}

	message := aggregator.Pop()
	if message == nil || message.Content == "" {
		return "", fmt.Errorf("no response messages received from model")
	}
	return message.Content, nil
}
