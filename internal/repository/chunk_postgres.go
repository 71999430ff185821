package repository

import (
	"context"
	"fmt"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ChunkRepository stores and searches embedded document chunks.
type ChunkRepository interface {
	InsertChunks(ctx context.Context, chunks []entity.Chunk) error
	SearchByDocument(ctx context.Context, documentID string, embedding []float32, topK int) ([]entity.ScoredChunk, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

var _ ChunkRepository = &ChunkPostgres{}

// ChunkPostgres implements ChunkRepository using PostgreSQL + pgvector
type ChunkPostgres struct {
	db *pgxpool.Pool
}

func NewChunkPostgres(db *pgxpool.Pool) *ChunkPostgres {
	return &ChunkPostgres{db: db}
}

// InsertChunks writes all chunks of a document in one batch.
func (r *ChunkPostgres) InsertChunks(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	const query = `
		INSERT INTO chunks (id, document_id, ord, text, page, start_sec, end_sec, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		batch.Queue(query,
			chunk.ID, chunk.DocumentID, chunk.Ord, chunk.Text,
			chunk.Page, chunk.StartSec, chunk.EndSec, pgvector.NewVector(chunk.Embedding),
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range chunks {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert chunk batch: %w", err)
		}
	}
	return nil
}

// SearchByDocument returns the topK nearest chunks by cosine distance,
// scoped to a single document.
func (r *ChunkPostgres) SearchByDocument(ctx context.Context, documentID string, embedding []float32, topK int) ([]entity.ScoredChunk, error) {
	const query = `
		SELECT id, document_id, ord, text, page, start_sec, end_sec, embedding <=> $2 AS distance
		FROM chunks
		WHERE document_id = $1
		ORDER BY embedding <=> $2
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, documentID, pgvector.NewVector(embedding), topK)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	defer rows.Close()

	var hits []entity.ScoredChunk
	for rows.Next() {
		var hit entity.ScoredChunk
		err := rows.Scan(
			&hit.ID, &hit.DocumentID, &hit.Ord, &hit.Text,
			&hit.Page, &hit.StartSec, &hit.EndSec, &hit.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunk rows: %w", err)
	}
	return hits, nil
}

func (r *ChunkPostgres) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM chunks WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document chunks: %w", err)
	}
	return nil
}
