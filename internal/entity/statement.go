package entity

// TransactionType marks the direction of a bank transaction.
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// Spending categories assigned during statement analysis. CategoryOthers
// is also the fallback when categorization fails.
const (
	CategoryFoodDining    = "Food & Dining"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryUtilities     = "Utilities"
	CategoryBillsRecharge = "Bills & Recharges"
	CategoryEntertainment = "Entertainment"
	CategoryHealthcare    = "Healthcare"
	CategoryTransfers     = "Transfers"
	CategoryMiscPayments  = "Miscellaneous Payments"
	CategoryOthers        = "Others"
)

// SpendingCategories lists every category the categorizer may assign.
var SpendingCategories = []string{
	CategoryFoodDining,
	CategoryTransport,
	CategoryShopping,
	CategoryUtilities,
	CategoryBillsRecharge,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryTransfers,
	CategoryMiscPayments,
	CategoryOthers,
}

// Transaction is a single parsed statement line.
type Transaction struct {
	Date        string          `json:"date"` // DD-MM-YYYY
	Description string          `json:"description"`
	Amount      float64         `json:"amount"` // always positive
	Type        TransactionType `json:"type"`
	Category    string          `json:"category,omitempty"`
	Merchant    string          `json:"merchant,omitempty"`
}

// ParsedStatement is the LLM extraction result.
type ParsedStatement struct {
	AccountNumber   string        `json:"account_number"`
	StatementPeriod string        `json:"statement_period"`
	Transactions    []Transaction `json:"transactions"`
}

// MerchantSummary aggregates spend per merchant.
type MerchantSummary struct {
	Merchant string  `json:"merchant"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
}

// DailySpend is one point of the daily spending series.
type DailySpend struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// StatementAnalysis is the full analysis of one statement.
type StatementAnalysis struct {
	AccountNumber   string             `json:"account_number"`
	StatementPeriod string             `json:"statement_period"`
	Transactions    []Transaction      `json:"transactions"`
	CategoryTotals  map[string]float64 `json:"category_totals"`
	TotalDebit      float64            `json:"total_debit"`
	TotalCredit     float64            `json:"total_credit"`
	NetFlow         float64            `json:"net_flow"`
	DailySpending   []DailySpend       `json:"daily_spending"`
	TopMerchants    []MerchantSummary  `json:"top_merchants"`
	Recurring       []MerchantSummary  `json:"recurring_merchants"`
}
