package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/futig/cookbook-backend/internal/pkg/sessions"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// App is the session namespace of the portfolio analyzer.
const App = "portfolio"

const analysisTemperature = 0.3

const analysisSystemPrompt = "You are a seasoned equity portfolio analyst. Be specific and numeric."

// Usecase exchanges brokerage login tokens, fetches holdings and
// produces an LLM-written portfolio review. Access tokens live only in
// the session and vanish with it.
type Usecase struct {
	store     *sessions.Store
	brokerage BrokerageConnector
	llm       LLMConnector
	logger    *zap.Logger
}

type sessionState struct {
	AccessToken string
	Profile     *entity.Profile
	Portfolio   *entity.Portfolio
}

func NewUsecase(store *sessions.Store, brokerage BrokerageConnector, llm LLMConnector, logger *zap.Logger) *Usecase {
	return &Usecase{store: store, brokerage: brokerage, llm: llm, logger: logger}
}

// Connect exchanges a login request token and opens a session bound to
// the resulting access token.
func (uc *Usecase) Connect(ctx context.Context, requestToken string) (string, *entity.TokenExchangeResponse, error) {
	if strings.TrimSpace(requestToken) == "" {
		return "", nil, fmt.Errorf("%w: request_token", entity.ErrMissingField)
	}

	token, err := uc.brokerage.ExchangeToken(ctx, requestToken)
	if err != nil {
		return "", nil, err
	}

	entry := uc.store.Create(App, &sessionState{AccessToken: token.AccessToken})

	ctxzap.Info(ctx, "brokerage session opened",
		zap.String("session_id", entry.ID),
		zap.String("user_id", token.UserID),
	)
	return entry.ID, token, nil
}

// Portfolio fetches profile and holdings for a connected session.
func (uc *Usecase) Portfolio(ctx context.Context, sessionID string) (*entity.Portfolio, error) {
	state, err := uc.state(sessionID)
	if err != nil {
		return nil, err
	}

	if state.Profile == nil {
		profile, err := uc.brokerage.Profile(ctx, state.AccessToken)
		if err != nil {
			return nil, err
		}
		state.Profile = profile
	}

	holdings, err := uc.brokerage.Holdings(ctx, state.AccessToken)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return nil, entity.ErrEmptyHoldings
	}

	portfolio := BuildPortfolio(*state.Profile, holdings)
	state.Portfolio = portfolio
	uc.store.Update(sessionID, state)
	return portfolio, nil
}

// Analyze produces the markdown review of the session's portfolio,
// fetching it first if needed.
func (uc *Usecase) Analyze(ctx context.Context, sessionID string) (*entity.PortfolioAnalysis, error) {
	state, err := uc.state(sessionID)
	if err != nil {
		return nil, err
	}

	portfolio := state.Portfolio
	if portfolio == nil {
		portfolio, err = uc.Portfolio(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	analysis, err := uc.llm.Complete(ctx, []entity.ChatMessage{
		{Role: "system", Content: analysisSystemPrompt},
		{Role: "user", Content: buildAnalysisPrompt(portfolio)},
	}, analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("analyze portfolio: %w", err)
	}

	ctxzap.Info(ctx, "portfolio analyzed",
		zap.Int("holdings", len(portfolio.Holdings)),
	)

	return &entity.PortfolioAnalysis{
		Portfolio: *portfolio,
		Analysis:  strings.TrimSpace(analysis),
	}, nil
}

func (uc *Usecase) state(sessionID string) (*sessionState, error) {
	entry, err := uc.store.Get(sessionID, App)
	if err != nil {
		return nil, err
	}
	state := entry.Payload.(*sessionState)
	if state.AccessToken == "" {
		return nil, entity.ErrTokenMissing
	}
	return state, nil
}

// BuildPortfolio aggregates holdings into portfolio-level totals.
func BuildPortfolio(profile entity.Profile, holdings []entity.Holding) *entity.Portfolio {
	portfolio := &entity.Portfolio{Profile: profile, Holdings: holdings}
	for _, holding := range holdings {
		portfolio.InvestedValue += holding.InvestedValue
		portfolio.CurrentValue += holding.CurrentValue
		portfolio.TotalPnL += holding.PnL
	}
	return portfolio
}

func buildAnalysisPrompt(portfolio *entity.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Review this equity portfolio for %s.\n\nHoldings:\n", portfolio.Profile.UserName)
	for _, holding := range portfolio.Holdings {
		fmt.Fprintf(&b, "- %s (%s): qty %.0f, avg %.2f, last %.2f, invested %.2f, current %.2f, P&L %.2f\n",
			holding.Symbol, holding.Exchange, holding.Quantity, holding.AveragePrice,
			holding.LastPrice, holding.InvestedValue, holding.CurrentValue, holding.PnL)
	}
	fmt.Fprintf(&b, "\nTotals: invested %.2f, current %.2f, P&L %.2f\n",
		portfolio.InvestedValue, portfolio.CurrentValue, portfolio.TotalPnL)

	b.WriteString(`
Write a markdown review with exactly these sections:
## Portfolio Summary
## Sector Analysis
## Diversification
Rate diversification on a 1-10 scale with reasoning.
## Recommendations`)
	return b.String()
}
