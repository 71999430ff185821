package entity

// TokenExchangeRequest trades a login request token for an access token.
type TokenExchangeRequest struct {
	RequestToken string `json:"request_token"`
}

// TokenExchangeResponse carries the brokerage access token.
type TokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
}

// Holding is one portfolio position.
type Holding struct {
	Symbol        string  `json:"tradingsymbol"`
	Exchange      string  `json:"exchange"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	LastPrice     float64 `json:"last_price"`
	PnL           float64 `json:"pnl"`
	InvestedValue float64 `json:"invested_value"`
	CurrentValue  float64 `json:"current_value"`
}

// Profile is the brokerage user profile.
type Profile struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Broker   string `json:"broker"`
}

// Portfolio groups profile and holdings for analysis.
type Portfolio struct {
	Profile       Profile   `json:"profile"`
	Holdings      []Holding `json:"holdings"`
	InvestedValue float64   `json:"invested_value"`
	CurrentValue  float64   `json:"current_value"`
	TotalPnL      float64   `json:"total_pnl"`
}

// PortfolioAnalysis is the LLM-written review.
type PortfolioAnalysis struct {
	Portfolio Portfolio `json:"portfolio"`
	Analysis  string    `json:"analysis"` // markdown
}
