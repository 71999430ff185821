package statements

import (
	"testing"

	"github.com/futig/cookbook-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatement() *entity.ParsedStatement {
	return &entity.ParsedStatement{
		AccountNumber:   "XXXXXX1234",
		StatementPeriod: "01-03-2025 to 31-03-2025",
		Transactions: []entity.Transaction{
			{Date: "02-03-2025", Description: "UPI-SWIGGY-ORDER123", Amount: 450, Type: entity.TransactionDebit, Category: entity.CategoryFoodDining},
			{Date: "05-03-2025", Description: "UPI-SWIGGY-ORDER456", Amount: 350, Type: entity.TransactionDebit, Category: entity.CategoryFoodDining},
			{Date: "05-03-2025", Description: "UPI-UBER-RIDE", Amount: 220, Type: entity.TransactionDebit, Category: entity.CategoryTransport},
			{Date: "10-03-2025", Description: "SALARY MARCH", Amount: 50000, Type: entity.TransactionCredit},
			{Date: "28-02-2025", Description: "NETFLIX SUBSCRIPTION", Amount: 649, Type: entity.TransactionDebit, Category: entity.CategoryEntertainment},
		},
	}
}

func TestAggregateTotals(t *testing.T) {
	analysis := Aggregate(sampleStatement())

	assert.InDelta(t, 1669.0, analysis.TotalDebit, 0.001)
	assert.InDelta(t, 50000.0, analysis.TotalCredit, 0.001)
	assert.InDelta(t, 48331.0, analysis.NetFlow, 0.001)

	assert.InDelta(t, 800.0, analysis.CategoryTotals[entity.CategoryFoodDining], 0.001)
	assert.InDelta(t, 220.0, analysis.CategoryTotals[entity.CategoryTransport], 0.001)

	_, hasCredits := analysis.CategoryTotals[""]
	assert.False(t, hasCredits, "credits must not enter category totals")
}

func TestAggregateDailySpendingSortsChronologically(t *testing.T) {
	analysis := Aggregate(sampleStatement())

	require.Len(t, analysis.DailySpending, 3)
	assert.Equal(t, "28-02-2025", analysis.DailySpending[0].Date)
	assert.Equal(t, "02-03-2025", analysis.DailySpending[1].Date)
	assert.Equal(t, "05-03-2025", analysis.DailySpending[2].Date)
	assert.InDelta(t, 570.0, analysis.DailySpending[2].Total, 0.001)
}

func TestAggregateMerchants(t *testing.T) {
	analysis := Aggregate(sampleStatement())

	require.NotEmpty(t, analysis.TopMerchants)
	assert.Equal(t, "SWIGGY", analysis.TopMerchants[0].Merchant)
	assert.Equal(t, 2, analysis.TopMerchants[0].Count)
	assert.InDelta(t, 800.0, analysis.TopMerchants[0].Total, 0.001)
	assert.InDelta(t, 400.0, analysis.TopMerchants[0].Average, 0.001)

	require.Len(t, analysis.Recurring, 1)
	assert.Equal(t, "SWIGGY", analysis.Recurring[0].Merchant)
}

func TestExtractMerchant(t *testing.T) {
	assert.Equal(t, "SWIGGY", ExtractMerchant("UPI-SWIGGY-ORDER123"))
	assert.Equal(t, "ZOMATO", ExtractMerchant("UPI/ZOMATO/REF99"))
	assert.Equal(t, "NEFT TRANSFER TO JOHN", ExtractMerchant("NEFT TRANSFER TO JOHN"))

	long := "UPI-" + string(make([]rune, 0)) + "AVERYLONGMERCHANTNAMETHATGOESWAYBEYONDTHEFIFTYCHARACTERLIMITFORSURE-REF"
	got := ExtractMerchant(long)
	assert.LessOrEqual(t, len([]rune(got)), 50)
}
