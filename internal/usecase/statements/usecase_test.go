package statements

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/futig/cookbook-backend/internal/config"
	"github.com/futig/cookbook-backend/internal/entity"
	llmconn "github.com/futig/cookbook-backend/internal/integration/llm"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLLM struct {
	parseReply      string
	categorizeReply string
	categorizeErr   error
}

func (f *fakeLLM) Complete(_ context.Context, messages []entity.ChatMessage, _ float64) (string, error) {
	prompt := messages[len(messages)-1].Content
	switch {
	case strings.Contains(prompt, "account_number"):
		return f.parseReply, nil
	case strings.Contains(prompt, "Categorize each transaction"):
		if f.categorizeErr != nil {
			return "", f.categorizeErr
		}
		return f.categorizeReply, nil
	default:
		return "", errors.New("unexpected prompt")
	}
}

func newTestUsecase(llm LLMConnector) *Usecase {
	store := sessions.NewStore(config.SessionConfig{}, zap.NewNop())
	return NewUsecase(store, llm, zap.NewNop())
}

func TestParseStatement(t *testing.T) {
	llm := &fakeLLM{
		parseReply: "```json\n" + `{
			"account_number": "XXXXXX1234",
			"statement_period": "01-01-2024 to 31-01-2024",
			"transactions": [
				{"date": "02-01-2024", "description": "UPI-SWIGGY-123", "amount": 450, "type": "debit"}
			]
		}` + "\n```",
	}
	uc := newTestUsecase(llm)

	parsed, err := uc.parse(context.Background(), "statement text")
	require.NoError(t, err)
	assert.Equal(t, "XXXXXX1234", parsed.AccountNumber)
	require.Len(t, parsed.Transactions, 1)
	assert.Equal(t, entity.TransactionDebit, parsed.Transactions[0].Type)
}

func TestParseStatementMalformedReply(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{parseReply: "not json"})

	_, err := uc.parse(context.Background(), "statement text")
	assert.ErrorIs(t, err, entity.ErrMalformedLLMReply)
}

func TestCategorize(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{categorizeReply: `["Food & Dining", "transport"]`})

	txns := []entity.Transaction{
		{Description: "UPI-SWIGGY-123", Type: "debit", Amount: 450},
		{Description: "UPI-UBER-456", Type: "debit", Amount: 220},
	}
	require.NoError(t, uc.categorize(context.Background(), txns))

	assert.Equal(t, "Food & Dining", txns[0].Category)
	assert.Equal(t, entity.CategoryTransport, txns[1].Category, "categories are normalized case-insensitively")
	assert.Equal(t, "SWIGGY", txns[0].Merchant)
}

func TestCategorizeFallsBackOnFailure(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{categorizeErr: errors.New("llm down")})

	txns := []entity.Transaction{
		{Description: "UPI-SWIGGY-123", Type: "debit", Amount: 450},
	}
	require.NoError(t, uc.categorize(context.Background(), txns))
	assert.Equal(t, entity.CategoryOthers, txns[0].Category)
}

func TestCategorizeCountMismatch(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{categorizeReply: `["Travel"]`})

	txns := []entity.Transaction{
		{Description: "A", Type: "debit", Amount: 1},
		{Description: "B", Type: "debit", Amount: 2},
	}
	// Mismatched batches fall back instead of failing the analysis.
	require.NoError(t, uc.categorize(context.Background(), txns))
	assert.Equal(t, entity.CategoryOthers, txns[0].Category)
	assert.Equal(t, entity.CategoryOthers, txns[1].Category)
}

func TestCategorizeWithCannedConnector(t *testing.T) {
	uc := newTestUsecase(llmconn.NewMockConnector(zap.NewNop()))

	txns := []entity.Transaction{
		{Description: "UPI-SWIGGY-ORDER", Type: entity.TransactionDebit, Amount: 450},
		{Description: "SALARY CREDIT", Type: entity.TransactionCredit, Amount: 85000},
		{Description: "UPI-UBER-RIDE", Type: entity.TransactionDebit, Amount: 220},
	}
	require.NoError(t, uc.categorize(context.Background(), txns))

	assert.Equal(t, entity.CategoryFoodDining, txns[0].Category)
	assert.Equal(t, entity.CategoryTransfers, txns[1].Category)
	assert.Equal(t, entity.CategoryTransport, txns[2].Category)
	assert.Equal(t, "SWIGGY", txns[0].Merchant)
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Shopping", normalizeCategory(" shopping "))
	assert.Equal(t, entity.CategoryFoodDining, normalizeCategory("food & dining"))
	assert.Equal(t, entity.CategoryOthers, normalizeCategory("Cryptocurrency"))
	assert.Equal(t, entity.CategoryOthers, normalizeCategory(""))
}

func TestGetAnalysisAndReport(t *testing.T) {
	uc := newTestUsecase(&fakeLLM{})

	analysis := &entity.StatementAnalysis{
		AccountNumber: "XXXX1234",
		TotalDebit:    100,
		TotalCredit:   500,
		NetFlow:       400,
	}
	entry := uc.store.Create(App, analysis)

	got, err := uc.GetAnalysis(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, analysis, got)

	report, err := uc.Report(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Contains(t, report, "XXXX1234")

	_, err = uc.GetAnalysis(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}
