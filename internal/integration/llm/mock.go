package llm

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a deterministic stand-in for the language model.
// Replies are keyed off marker phrases in the prompt so every app
// receives something it can parse.
type MockConnector struct {
	logger *zap.Logger
	dims   int
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger, dims: 1536}
}

func (m *MockConnector) Complete(ctx context.Context, messages []entity.ChatMessage, temperature float64) (string, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion", zap.Float64("temperature", temperature))

	var prompt strings.Builder
	for _, msg := range messages {
		prompt.WriteString(msg.Content)
		prompt.WriteString("\n")
	}
	text := strings.ToLower(prompt.String())

	switch {
	case strings.Contains(text, "transactions") && strings.Contains(text, "account_number"):
		return `{"account_number":"XXXX1234","statement_period":"01-03-2025 to 31-03-2025","transactions":[` +
			`{"date":"02-03-2025","description":"UPI-SWIGGY-ORDER","amount":450.0,"type":"debit"},` +
			`{"date":"05-03-2025","description":"UPI-SWIGGY-ORDER","amount":380.0,"type":"debit"},` +
			`{"date":"07-03-2025","description":"SALARY CREDIT","amount":85000.0,"type":"credit"},` +
			`{"date":"12-03-2025","description":"UPI-UBER-RIDE","amount":220.0,"type":"debit"}]}`, nil
	case strings.Contains(text, "categorize"):
		return mockTransactionCategories(text), nil
	case strings.Contains(text, "main_destination"):
		return `[{"day":1,"main_destination":"Old Town","places":["Castle Hill","Market Square","River Walk"]},` +
			`{"day":2,"main_destination":"Museum District","places":["Art Museum","Botanical Garden","Opera House"]}]`, nil
	case strings.Contains(text, "json array of tool calls"):
		return `[{"tool":"search_repositories","params":{"query":"owner/repo"}}]`, nil
	case strings.Contains(text, `[{"name"`) || strings.Contains(text, "extract the specific locations"):
		return `[{"name":"Castle Hill","day":1},{"name":"Art Museum","day":2}]`, nil
	case strings.Contains(text, "analysis_plan"):
		return "ANALYSIS_PLAN: Aggregate the requested column and report the total.\nCHART_NEEDED: yes", nil
	case strings.Contains(text, `"operation"`):
		return `{"operation":"sum","column":"amount"}`, nil
	case strings.Contains(text, "linkedin"):
		return `{"LINKEDIN":"Mock LinkedIn post about the topic, with a call to action.","tweet":"Mock tweet under the limit."}`, nil
	default:
		return "[MOCK] This is a canned model reply for local development.", nil
	}
}

// mockTransactionCategories answers the categorization prompt with a
// JSON array of category strings, one per numbered transaction line.
func mockTransactionCategories(prompt string) string {
	var categories []string
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if !isNumberedLine(line) {
			continue
		}
		categories = append(categories, mockCategoryFor(line))
	}
	if len(categories) == 0 {
		return "[]"
	}
	out, _ := json.Marshal(categories)
	return string(out)
}

func isNumberedLine(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && strings.HasPrefix(line[i:], ". ")
}

func mockCategoryFor(line string) string {
	switch {
	case strings.Contains(line, "swiggy"), strings.Contains(line, "zomato"):
		return entity.CategoryFoodDining
	case strings.Contains(line, "uber"), strings.Contains(line, "ola"):
		return entity.CategoryTransport
	case strings.Contains(line, "salary"), strings.Contains(line, "neft"),
		strings.Contains(line, "imps"):
		return entity.CategoryTransfers
	case strings.Contains(line, "netflix"), strings.Contains(line, "spotify"):
		return entity.CategoryEntertainment
	case strings.Contains(line, "amazon"), strings.Contains(line, "flipkart"):
		return entity.CategoryShopping
	case strings.Contains(line, "recharge"), strings.Contains(line, "electricity"):
		return entity.CategoryBillsRecharge
	default:
		return entity.CategoryOthers
	}
}

// Embed produces stable pseudo-embeddings so similarity search stays
// deterministic across runs.
func (m *MockConnector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Info(ctx, "[MOCK] embeddings", zap.Int("inputs", len(texts)))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, m.dims)
		h := fnv.New32a()
		h.Write([]byte(text))
		seed := h.Sum32()
		for j := range vec {
			seed = seed*1664525 + 1013904223
			vec[j] = float32(seed%2000)/1000.0 - 1.0
		}
		vectors[i] = vec
	}
	return vectors, nil
}
