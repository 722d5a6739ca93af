// Package embeddings generates vector embeddings through a fixed worker
// pool with content-keyed caching.
package embeddings

import (
	"context"
	"fmt"
	"sync"

	"github.com/ollama/ollama/api"
)

// Embedder turns text into a vector embedding.
type Embedder interface {
	Embed(ctx context.Context, content string) ([]float32, error)
}

// OllamaEmbedder calls a local Ollama embedding model.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

func NewOllamaEmbedder(model string) (*OllamaEmbedder, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}
	return &OllamaEmbedder{client: client, model: model}, nil
}

func (e *OllamaEmbedder) Embed(ctx context.Context, content string) ([]float32, error) {
	resp, err := e.client.Embeddings(ctx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: content,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	embedding := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// Result represents the result of embedding generation
type Result struct {
	Content   string
	Embedding []float32
	Error     error
}

// Work represents a unit of embedding work
type Work struct {
	Content string
	Result  chan<- Result
}

// Service manages embedding generation and caching
type Service struct {
	embedder   Embedder
	numWorkers int
	workQueue  chan Work
	cache      sync.Map // Thread-safe map for caching embeddings
	wg         sync.WaitGroup
}

// NewService creates a new embedding service with the specified number of workers
func NewService(embedder Embedder, numWorkers int) *Service {
	if numWorkers <= 0 {
		numWorkers = 4
	}

	service := &Service{
		embedder:   embedder,
		numWorkers: numWorkers,
		workQueue:  make(chan Work, 100),
	}

	service.startWorkers()

	return service
}

func (s *Service) startWorkers() {
	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for work := range s.workQueue {
				// Check cache first
				if cached, ok := s.cache.Load(work.Content); ok {
					if embedding, valid := cached.([]float32); valid {
						work.Result <- Result{
							Content:   work.Content,
							Embedding: embedding,
						}
						continue
					}
				}

				embedding, err := s.embedder.Embed(context.Background(), work.Content)
				if err == nil {
					s.cache.Store(work.Content, embedding)
				}

				work.Result <- Result{
					Content:   work.Content,
					Embedding: embedding,
					Error:     err,
				}
			}
		}()
	}
}

// GetEmbedding requests an embedding generation asynchronously
func (s *Service) GetEmbedding(content string) <-chan Result {
	resultChan := make(chan Result, 1)

	select {
	case s.workQueue <- Work{
		Content: content,
		Result:  resultChan,
	}:
		// Work queued successfully
	default:
		// Queue is full, fail immediately instead of blocking the caller
		resultChan <- Result{
			Content: content,
			Error:   fmt.Errorf("embedding queue is full, try again later"),
		}
		close(resultChan)
	}

	return resultChan
}

// Close shuts down the embedding service and waits for all workers to finish
func (s *Service) Close() {
	if s.workQueue != nil {
		close(s.workQueue)
	}
	s.wg.Wait()
}
