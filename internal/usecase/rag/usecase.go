package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/chunker"
	"github.com/futig/cookbook-backend/internal/pkg/extract"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/futig/cookbook-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	// App is the session namespace of the retrieval chat.
	App = "rag"

	topKChunks        = 4
	answerTemperature = 0
)

const pdfSystemPrompt = "You are a helpful assistant that answers questions based ONLY on the " +
	"provided document context. If the answer is not in the context, say that you cannot find it " +
	"in the document. Cite the page number in the form (Page X) for every claim you make."

const audioSystemPrompt = "You are a helpful assistant that answers questions based ONLY on the " +
	"provided transcript context. If the answer is not in the context, say that you cannot find it " +
	"in the recording. Cite the timestamp in the form (at MM:SS) for every claim you make."

// Usecase implements document and audio retrieval chat.
type Usecase struct {
	docRepo   repository.DocumentRepository
	chunkRepo repository.ChunkRepository
	store     *sessions.Store
	llm       LLMConnector
	asr       ASRConnector
	splitter  *chunker.Chunker
	logger    *zap.Logger
}

// sessionState tracks which document a session currently owns.
type sessionState struct {
	DocumentID string
}

func NewUsecase(
	docRepo repository.DocumentRepository,
	chunkRepo repository.ChunkRepository,
	store *sessions.Store,
	llm LLMConnector,
	asr ASRConnector,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		store:     store,
		llm:       llm,
		asr:       asr,
		splitter:  chunker.NewDefault(),
		logger:    logger,
	}
}

// IndexPDF extracts, chunks, embeds and stores a PDF upload. A fresh
// session owns the document and reaps it on expiry.
func (uc *Usecase) IndexPDF(ctx context.Context, name string, data []byte) (*entity.Document, error) {
	pages, err := extract.PDFPages(data)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	if len(pages) == 0 {
		return nil, entity.ErrEmptyDocument
	}

	joined := extract.JoinPages(pages)
	pageIndex := extract.BuildPageIndex(joined)
	pieces := uc.splitter.Chunk(joined)

	ctxzap.Info(ctx, "pdf extracted",
		zap.String("name", name),
		zap.Int("pages", len(pages)),
		zap.Int("chunks", len(pieces)),
	)

	doc := &entity.Document{
		ID:         uuid.New().String(),
		Name:       name,
		Kind:       entity.DocumentKindPDF,
		PageCount:  len(pages),
		WordCount:  extract.CountWords(joined),
		ChunkCount: len(pieces),
		CreatedAt:  time.Now().UTC(),
	}

	chunks := make([]entity.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = entity.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Ord:        i,
			Text:       piece.Text,
			Page:       pageIndex.PageAt(piece.Start),
		}
	}

	if err := uc.index(ctx, doc, chunks, pieces); err != nil {
		return nil, err
	}
	return doc, nil
}

// IndexAudio transcribes an audio upload and indexes the transcript.
// Chunk timestamps are interpolated from character positions.
func (uc *Usecase) IndexAudio(ctx context.Context, name string, data []byte) (*entity.Document, error) {
	transcript, err := uc.asr.Transcribe(ctx, data, name)
	if err != nil {
		return nil, fmt.Errorf("transcribe audio: %w", err)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		return nil, entity.ErrEmptyTranscript
	}

	pieces := uc.splitter.Chunk(transcript.Text)
	totalChars := len([]rune(transcript.Text))

	ctxzap.Info(ctx, "audio transcribed",
		zap.String("name", name),
		zap.Float64("duration_sec", transcript.DurationSec),
		zap.Int("chunks", len(pieces)),
	)

	doc := &entity.Document{
		ID:          uuid.New().String(),
		Name:        name,
		Kind:        entity.DocumentKindAudio,
		DurationSec: transcript.DurationSec,
		WordCount:   transcript.WordCount,
		ChunkCount:  len(pieces),
		CreatedAt:   time.Now().UTC(),
	}

	chunks := make([]entity.Chunk, len(pieces))
	for i, piece := range pieces {
		start, end := interpolateTimestamps(piece.Start, piece.End, totalChars, transcript.DurationSec)
		chunks[i] = entity.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Ord:        i,
			Text:       piece.Text,
			StartSec:   start,
			EndSec:     end,
		}
	}

	if err := uc.index(ctx, doc, chunks, pieces); err != nil {
		return nil, err
	}
	return doc, nil
}

func (uc *Usecase) index(ctx context.Context, doc *entity.Document, chunks []entity.Chunk, pieces []chunker.Piece) error {
	texts := make([]string, len(pieces))
	for i, piece := range pieces {
		texts[i] = piece.Text
	}

	vectors, err := uc.llm.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	for i := range chunks {
		chunks[i].Embedding = vectors[i]
	}

	entry := uc.store.Create(App, &sessionState{DocumentID: doc.ID})
	doc.SessionID = entry.ID

	if err := uc.docRepo.Create(ctx, doc); err != nil {
		uc.store.Delete(entry.ID)
		return fmt.Errorf("store document: %w", err)
	}

	if err := uc.chunkRepo.InsertChunks(ctx, chunks); err != nil {
		uc.store.Delete(entry.ID)
		return fmt.Errorf("store chunks: %w", err)
	}

	ctxzap.Info(ctx, "document indexed",
		zap.String("document_id", doc.ID),
		zap.String("session_id", doc.SessionID),
	)
	return nil
}

// Ask answers a question over an indexed document.
func (uc *Usecase) Ask(ctx context.Context, documentID, question string) (*entity.RAGAnswer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question", entity.ErrMissingField)
	}

	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	vectors, err := uc.llm.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	hits, err := uc.chunkRepo.SearchByDocument(ctx, documentID, vectors[0], topKChunks)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}
	if len(hits) == 0 {
		return nil, entity.ErrEmptyDocument
	}

	ctxzap.Info(ctx, "retrieved context",
		zap.String("document_id", documentID),
		zap.Int("hits", len(hits)),
	)

	systemPrompt := pdfSystemPrompt
	if doc.Kind == entity.DocumentKindAudio {
		systemPrompt = audioSystemPrompt
	}

	answer, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildQuestionPrompt(doc, hits, question)},
	}, answerTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &entity.RAGAnswer{
		Answer:    answer,
		Citations: buildCitations(doc, hits),
	}, nil
}

func buildQuestionPrompt(doc *entity.Document, hits []entity.ScoredChunk, question string) string {
	var b strings.Builder
	b.WriteString("Context:\n\n")
	for _, hit := range hits {
		if doc.Kind == entity.DocumentKindAudio {
			fmt.Fprintf(&b, "[at %s] %s\n\n", formatTimestamp(hit.StartSec), hit.Text)
		} else {
			b.WriteString(hit.Text)
			b.WriteString("\n\n")
		}
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}

func buildCitations(doc *entity.Document, hits []entity.ScoredChunk) []entity.Citation {
	citations := make([]entity.Citation, 0, len(hits))
	for _, hit := range hits {
		citation := entity.Citation{
			Snippet:  snippet(hit.Text),
			Distance: hit.Distance,
		}
		if doc.Kind == entity.DocumentKindAudio {
			citation.Source = fmt.Sprintf("%s (at %s)", doc.Name, formatTimestamp(hit.StartSec))
			citation.Timestamp = formatTimestamp(hit.StartSec)
		} else {
			citation.Source = fmt.Sprintf("%s (Page %d)", doc.Name, hit.Page)
			citation.Page = hit.Page
		}
		citations = append(citations, citation)
	}
	return citations
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= 160 {
		return text
	}
	return string(runes[:160]) + "..."
}
