package datachat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/llmtext"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/futig/cookbook-backend/internal/pkg/tabular"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// App is the session namespace of the data analysis chat.
const App = "datachat"

const previewRows = 5

// Usecase answers natural language questions over uploaded tabular
// data. The model plans and emits an analysis spec; the data itself is
// only ever touched by the deterministic evaluator.
type Usecase struct {
	store  *sessions.Store
	llm    LLMConnector
	logger *zap.Logger
}

type sessionState struct {
	Dataset *entity.Dataset
	History []entity.DatasetTurn
}

func NewUsecase(store *sessions.Store, llm LLMConnector, logger *zap.Logger) *Usecase {
	return &Usecase{store: store, llm: llm, logger: logger}
}

// Upload loads a CSV or XLSX file into a fresh session.
func (uc *Usecase) Upload(ctx context.Context, name string, data []byte) (*entity.DatasetSummary, error) {
	ds, err := tabular.Load(name, data)
	if err != nil {
		return nil, err
	}

	entry := uc.store.Create(App, &sessionState{Dataset: ds})

	ctxzap.Info(ctx, "dataset loaded",
		zap.String("name", name),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("columns", len(ds.Columns)),
	)

	preview := ds.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}
	return &entity.DatasetSummary{
		SessionID: entry.ID,
		Name:      ds.Name,
		Rows:      len(ds.Rows),
		Columns:   ds.Columns,
		Preview:   preview,
	}, nil
}

// Ask runs the plan / spec / evaluate / answer pipeline for one
// question and appends the turn to the session history.
func (uc *Usecase) Ask(ctx context.Context, sessionID, question string) (*entity.DatasetAnswer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question", entity.ErrMissingField)
	}

	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	state := entry.Payload.(*sessionState)

	plan, chartWanted, err := uc.plan(ctx, state.Dataset, question)
	if err != nil {
		return nil, err
	}

	spec, err := uc.buildSpec(ctx, state.Dataset, question, plan)
	if err != nil {
		return nil, err
	}

	result, err := Evaluate(state.Dataset, spec)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "analysis evaluated",
		zap.String("operation", spec.Operation),
		zap.Int("rows", result.Rows),
	)

	answer, err := uc.narrate(ctx, question, spec, result)
	if err != nil {
		return nil, err
	}

	reply := &entity.DatasetAnswer{
		Plan:   plan,
		Spec:   spec,
		Result: result,
		Answer: answer,
	}
	if chartWanted {
		reply.Chart = BuildChart(question, result)
	}

	state.History = append(state.History, entity.DatasetTurn{Question: question, Answer: *reply})
	uc.store.Update(sessionID, state)
	return reply, nil
}

// History returns the past turns of a session.
func (uc *Usecase) History(ctx context.Context, sessionID string) ([]entity.DatasetTurn, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	return entry.Payload.(*sessionState).History, nil
}

func (uc *Usecase) plan(ctx context.Context, ds *entity.Dataset, question string) (string, bool, error) {
	prompt := fmt.Sprintf(`You are a data analyst. Given the dataset schema and a question, describe how to answer it.

%s

Question: %s

Reply in exactly this format:
ANALYSIS_PLAN: <one sentence describing the computation>
CHART_NEEDED: <yes or no>`, describeSchema(ds), question)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return "", false, fmt.Errorf("plan analysis: %w", err)
	}

	plan, chartWanted := parsePlanReply(reply)
	if plan == "" {
		return "", false, fmt.Errorf("%w: missing analysis plan", entity.ErrMalformedLLMReply)
	}
	return plan, chartWanted, nil
}

func (uc *Usecase) buildSpec(ctx context.Context, ds *entity.Dataset, question, plan string) (*entity.AnalysisSpec, error) {
	prompt := fmt.Sprintf(`Translate this analysis plan into a JSON spec.

%s

Plan: %s
Question: %s

Return a single JSON object:
{"operation": "sum"|"mean"|"count"|"min"|"max"|"groupby", "column": optional column name, "group_by": optional column name, "filters": optional [{"column": name, "op": "eq"|"ne"|"gt"|"lt"|"contains", "value": string}]}

Use only column names from the schema. JSON only, no prose.`, describeSchema(ds), plan, question)

	reply, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("build analysis spec: %w", err)
	}

	var spec entity.AnalysisSpec
	if err := json.Unmarshal([]byte(llmtext.StripFences(reply)), &spec); err != nil {
		return nil, fmt.Errorf("%w: analysis spec: %v", entity.ErrMalformedLLMReply, err)
	}
	return &spec, nil
}

func (uc *Usecase) narrate(ctx context.Context, question string, spec *entity.AnalysisSpec, result *entity.AnalysisResult) (string, error) {
	resultJSON, _ := json.Marshal(result)
	prompt := fmt.Sprintf(`Answer the user's question in one or two sentences based on this computed result.

Question: %s
Computation: %s over %d rows
Result: %s`, question, spec.Operation, result.Rows, resultJSON)

	answer, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "user", Content: prompt},
	}, 0.3)
	if err != nil {
		return "", fmt.Errorf("narrate result: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func describeSchema(ds *entity.Dataset) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset %q, %d rows. Columns:\n", ds.Name, len(ds.Rows))
	for _, col := range ds.Columns {
		fmt.Fprintf(&b, "- %s (%s)\n", col.Name, col.Type)
	}
	return b.String()
}

func parsePlanReply(reply string) (plan string, chartWanted bool) {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "ANALYSIS_PLAN:"); ok {
			plan = strings.TrimSpace(after)
		}
		if after, ok := strings.CutPrefix(line, "CHART_NEEDED:"); ok {
			chartWanted = strings.EqualFold(strings.TrimSpace(after), "yes")
		}
	}
	return plan, chartWanted
}
