package statements

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/extract"
	"github.com/futig/cookbook-backend/internal/pkg/llmtext"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// App is the session namespace of the statement analyzer.
const App = "statements"

const parseSystemPrompt = "You are a precise bank statement parser. Reply with JSON only, no prose."

// categorizeBatchSize keeps the categorization prompt within a single
// completion.
const categorizeBatchSize = 50

// Usecase parses bank statement PDFs and derives spending analytics.
type Usecase struct {
	store  *sessions.Store
	llm    LLMConnector
	logger *zap.Logger
}

func NewUsecase(store *sessions.Store, llm LLMConnector, logger *zap.Logger) *Usecase {
	return &Usecase{store: store, llm: llm, logger: logger}
}

// Analyze runs the full pipeline over an uploaded statement PDF:
// extract text, parse transactions, categorize, aggregate.
func (uc *Usecase) Analyze(ctx context.Context, name string, data []byte) (string, *entity.StatementAnalysis, error) {
	pages, err := extract.PDFPages(data)
	if err != nil {
		return "", nil, fmt.Errorf("extract statement text: %w", err)
	}
	if len(pages) == 0 {
		return "", nil, entity.ErrEmptyDocument
	}
	parts := make([]string, len(pages))
	for i, page := range pages {
		parts[i] = page.Text
	}
	text := strings.Join(parts, "\n")

	parsed, err := uc.parse(ctx, text)
	if err != nil {
		return "", nil, err
	}
	if len(parsed.Transactions) == 0 {
		return "", nil, entity.ErrNoTransactions
	}

	ctxzap.Info(ctx, "statement parsed",
		zap.String("name", name),
		zap.Int("transactions", len(parsed.Transactions)),
	)

	if err := uc.categorize(ctx, parsed.Transactions); err != nil {
		return "", nil, err
	}

	analysis := Aggregate(parsed)

	entry := uc.store.Create(App, analysis)
	return entry.ID, analysis, nil
}

// GetAnalysis returns a previously computed analysis by session.
func (uc *Usecase) GetAnalysis(ctx context.Context, sessionID string) (*entity.StatementAnalysis, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	return entry.Payload.(*entity.StatementAnalysis), nil
}

// Report renders the analysis as a markdown summary for download.
func (uc *Usecase) Report(ctx context.Context, sessionID string) (string, error) {
	analysis, err := uc.GetAnalysis(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return renderReport(analysis), nil
}

func (uc *Usecase) parse(ctx context.Context, text string) (*entity.ParsedStatement, error) {
	prompt := fmt.Sprintf(`Extract all transactions from this bank statement.

Return a JSON object with:
- "account_number": the account number with all but the last 4 digits masked as X
- "statement_period": the statement period as printed
- "transactions": array of {"date": "DD-MM-YYYY", "description": string, "amount": positive number, "type": "debit" or "credit"}

Amounts are always positive; the type field carries the direction.

Statement text:
%s`, text)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "system", Content: parseSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	var parsed entity.ParsedStatement
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: statement parse reply: %v", entity.ErrMalformedLLMReply, err)
	}
	return &parsed, nil
}

// categorize assigns a spending category to every transaction. Failed
// batches fall back to Others rather than failing the analysis.
func (uc *Usecase) categorize(ctx context.Context, txns []entity.Transaction) error {
	for start := 0; start < len(txns); start += categorizeBatchSize {
		end := start + categorizeBatchSize
		if end > len(txns) {
			end = len(txns)
		}
		batch := txns[start:end]

		categories, err := uc.categorizeBatch(ctx, batch)
		if err != nil {
			ctxzap.Warn(ctx, "categorization batch failed, falling back",
				zap.Int("offset", start), zap.Error(err))
			for i := range batch {
				batch[i].Category = entity.CategoryOthers
			}
			continue
		}
		for i := range batch {
			batch[i].Category = normalizeCategory(categories[i])
			batch[i].Merchant = ExtractMerchant(batch[i].Description)
		}
	}
	return nil
}

func (uc *Usecase) categorizeBatch(ctx context.Context, batch []entity.Transaction) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Categorize each transaction below into exactly one of: %s.\n",
		strings.Join(entity.SpendingCategories, ", "))
	b.WriteString("Return a JSON array of category strings, one per transaction, in order.\n\n")
	for i, txn := range batch {
		fmt.Fprintf(&b, "%d. %s (%s %.2f)\n", i+1, txn.Description, txn.Type, txn.Amount)
	}

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: b.String()},
	}, 0)
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &categories); err != nil {
		return nil, fmt.Errorf("%w: category reply: %v", entity.ErrMalformedLLMReply, err)
	}
	if len(categories) != len(batch) {
		return nil, fmt.Errorf("%w: got %d categories for %d transactions",
			entity.ErrMalformedLLMReply, len(categories), len(batch))
	}
	return categories, nil
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	for _, known := range entity.SpendingCategories {
		if strings.EqualFold(category, known) {
			return known
		}
	}
	return entity.CategoryOthers
}
