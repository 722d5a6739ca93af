package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/smartdash/vision/internal/models"
)

// SummaryArchive stores generated summaries in PostgreSQL with a pgvector
// embedding so prior incidents can be recalled by similarity.
type SummaryArchive struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewSummaryArchive connects, verifies the connection and ensures the
// schema exists.
func NewSummaryArchive(ctx context.Context, connString string, logger *slog.Logger) (*SummaryArchive, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	a := &SummaryArchive{pool: pool, logger: logger}
	if err := a.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// Close closes the database connection
func (a *SummaryArchive) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *SummaryArchive) ensureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	// vector(768) matches the default nomic-embed-text model; a different
	// embedding model needs a manual migration.
	_, err := a.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS summaries (
            id SERIAL PRIMARY KEY,
            video VARCHAR(255) NOT NULL,
            model VARCHAR(255) NOT NULL,
            frame_count INTEGER NOT NULL,
            summary TEXT NOT NULL,
            embedding vector(768),
            created_at TIMESTAMPTZ NOT NULL
        );
    `)
	if err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	_, err = a.pool.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS idx_summaries_embedding ON summaries
        USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);
    `)
	if err != nil {
		return fmt.Errorf("failed to create database indexes: %w", err)
	}

	return nil
}

// Save inserts one summary. A nil embedding is stored as NULL so the row
// survives even when the embedding backend is down.
func (a *SummaryArchive) Save(ctx context.Context, rec models.IncidentSummary, embedding []float32) error {
	var emb any
	if len(embedding) > 0 {
		emb = pgvector.NewVector(embedding)
	}

	_, err := a.pool.Exec(ctx,
		`INSERT INTO summaries
        (video, model, frame_count, summary, embedding, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.Video, rec.Model, rec.FrameCount, rec.Summary, emb, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	a.logger.Info("archived summary", slog.String("video", rec.Video))
	return nil
}

// SearchSimilar finds prior summaries closest to the given embedding.
func (a *SummaryArchive) SearchSimilar(ctx context.Context, embedding []float32, limit int) ([]models.SimilarIncident, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT video, summary, 1 - (embedding <=> $1) AS similarity
        FROM summaries
        WHERE embedding IS NOT NULL
        ORDER BY embedding <=> $1
        LIMIT $2`,
		pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar summaries: %w", err)
	}
	defer rows.Close()

	var results []models.SimilarIncident
	for rows.Next() {
		var result models.SimilarIncident
		if err := rows.Scan(&result.Video, &result.Summary, &result.Similarity); err != nil {
			return nil, fmt.Errorf("failed to scan search results: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}
