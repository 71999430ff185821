package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	askedDocumentID string
	askedQuestion   string
}

func (f *fakeUsecase) IndexPDF(context.Context, string, []byte) (*entity.Document, error) {
	return &entity.Document{}, nil
}

func (f *fakeUsecase) IndexAudio(context.Context, string, []byte) (*entity.Document, error) {
	return &entity.Document{}, nil
}

func (f *fakeUsecase) Ask(_ context.Context, documentID, question string) (*entity.RAGAnswer, error) {
	f.askedDocumentID = documentID
	f.askedQuestion = question
	return &entity.RAGAnswer{Answer: "canned answer"}, nil
}

func newTestRouter(uc RAGUsecase) chi.Router {
	cfg := config.FileUploadConfig{MaxUploadSize: 1 << 20}
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, cfg, validator.NewFileValidator(cfg)))
	return r
}

func TestAskRoutes(t *testing.T) {
	for _, path := range []string{
		"/rag/documents/doc-1/questions",
		"/rag/audio/doc-1/questions",
	} {
		uc := &fakeUsecase{}
		router := newTestRouter(uc)

		req := httptest.NewRequest(http.MethodPost, path,
			strings.NewReader(`{"question": "what is covered?"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "doc-1", uc.askedDocumentID)
		assert.Equal(t, "what is covered?", uc.askedQuestion)

		var answer entity.RAGAnswer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
		assert.Equal(t, "canned answer", answer.Answer)
	}
}

func TestAskRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/rag/documents/doc-1/questions",
		strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
