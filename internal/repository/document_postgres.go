package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository persists indexed uploads.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db *pgxpool.Pool
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) Create(ctx context.Context, doc *entity.Document) error {
	const query = `
		INSERT INTO documents (id, session_id, name, kind, page_count, duration_sec, word_count, chunk_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		doc.ID, doc.SessionID, doc.Name, string(doc.Kind),
		doc.PageCount, doc.DurationSec, doc.WordCount, doc.ChunkCount, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentPostgres) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	const query = `
		SELECT id, session_id, name, kind, page_count, duration_sec, word_count, chunk_count, created_at
		FROM documents
		WHERE id = $1`

	var doc entity.Document
	var kind string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.SessionID, &doc.Name, &kind,
		&doc.PageCount, &doc.DurationSec, &doc.WordCount, &doc.ChunkCount, &doc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	doc.Kind = entity.DocumentKind(kind)
	return &doc, nil
}

// DeleteBySession removes all documents a session owns. Chunks go with
// them via the foreign key cascade.
func (r *DocumentPostgres) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM documents WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session documents: %w", err)
	}
	return nil
}
