package statements

import (
	"fmt"
	"sort"
	"strings"

	"github.com/futig/cookbook-backend/internal/entity"
)

const (
	topMerchantLimit   = 10
	merchantNameLimit  = 50
	recurringThreshold = 2
)

// Aggregate derives all analytics from parsed, categorized
// transactions. Category totals and daily spending cover debits only;
// net flow is credits minus debits.
func Aggregate(parsed *entity.ParsedStatement) *entity.StatementAnalysis {
	analysis := &entity.StatementAnalysis{
		AccountNumber:   parsed.AccountNumber,
		StatementPeriod: parsed.StatementPeriod,
		Transactions:    parsed.Transactions,
		CategoryTotals:  make(map[string]float64),
	}

	daily := make(map[string]float64)
	merchants := make(map[string]*entity.MerchantSummary)

	for _, txn := range parsed.Transactions {
		switch txn.Type {
		case entity.TransactionCredit:
			analysis.TotalCredit += txn.Amount
			continue
		case entity.TransactionDebit:
			analysis.TotalDebit += txn.Amount
		default:
			continue
		}

		category := txn.Category
		if category == "" {
			category = entity.CategoryOthers
		}
		analysis.CategoryTotals[category] += txn.Amount
		daily[txn.Date] += txn.Amount

		merchant := txn.Merchant
		if merchant == "" {
			merchant = ExtractMerchant(txn.Description)
		}
		summary, ok := merchants[merchant]
		if !ok {
			summary = &entity.MerchantSummary{Merchant: merchant}
			merchants[merchant] = summary
		}
		summary.Count++
		summary.Total += txn.Amount
	}

	analysis.NetFlow = analysis.TotalCredit - analysis.TotalDebit
	analysis.DailySpending = sortedDaily(daily)
	analysis.TopMerchants, analysis.Recurring = rankMerchants(merchants)
	return analysis
}

// ExtractMerchant pulls a merchant name out of a transaction
// description. UPI descriptions carry the payee in the second
// hyphen-separated field.
func ExtractMerchant(description string) string {
	description = strings.TrimSpace(description)

	upper := strings.ToUpper(description)
	if strings.HasPrefix(upper, "UPI-") || strings.HasPrefix(upper, "UPI/") {
		parts := strings.FieldsFunc(description, func(r rune) bool {
			return r == '-' || r == '/'
		})
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			return truncateMerchant(strings.TrimSpace(parts[1]))
		}
	}

	return truncateMerchant(description)
}

func truncateMerchant(name string) string {
	runes := []rune(name)
	if len(runes) <= merchantNameLimit {
		return name
	}
	return string(runes[:merchantNameLimit])
}

func sortedDaily(daily map[string]float64) []entity.DailySpend {
	series := make([]entity.DailySpend, 0, len(daily))
	for date, total := range daily {
		series = append(series, entity.DailySpend{Date: date, Total: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return dateSortKey(series[i].Date) < dateSortKey(series[j].Date)
	})
	return series
}

// dateSortKey reorders DD-MM-YYYY into YYYY-MM-DD so string comparison
// sorts chronologically. Unrecognized dates sort as-is.
func dateSortKey(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

func rankMerchants(merchants map[string]*entity.MerchantSummary) (top, recurring []entity.MerchantSummary) {
	all := make([]entity.MerchantSummary, 0, len(merchants))
	for _, summary := range merchants {
		summary.Average = summary.Total / float64(summary.Count)
		all = append(all, *summary)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Total != all[j].Total {
			return all[i].Total > all[j].Total
		}
		return all[i].Merchant < all[j].Merchant
	})

	top = all
	if len(top) > topMerchantLimit {
		top = top[:topMerchantLimit]
	}

	for _, summary := range all {
		if summary.Count >= recurringThreshold {
			recurring = append(recurring, summary)
		}
	}
	return top, recurring
}

func renderReport(analysis *entity.StatementAnalysis) string {
	var b strings.Builder
	b.WriteString("# Statement Analysis\n\n")
	fmt.Fprintf(&b, "Account: %s\n\n", analysis.AccountNumber)
	fmt.Fprintf(&b, "Period: %s\n\n", analysis.StatementPeriod)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total spent: %.2f\n", analysis.TotalDebit)
	fmt.Fprintf(&b, "- Total received: %.2f\n", analysis.TotalCredit)
	fmt.Fprintf(&b, "- Net flow: %.2f\n", analysis.NetFlow)
	fmt.Fprintf(&b, "- Transactions: %d\n\n", len(analysis.Transactions))

	b.WriteString("## Spending by Category\n\n")
	for _, category := range entity.SpendingCategories {
		total, ok := analysis.CategoryTotals[category]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %.2f\n", category, total)
	}
	b.WriteString("\n## Top Merchants\n\n")
	for i, merchant := range analysis.TopMerchants {
		fmt.Fprintf(&b, "%d. %s: %.2f across %d transactions\n",
			i+1, merchant.Merchant, merchant.Total, merchant.Count)
	}

	if len(analysis.Recurring) > 0 {
		b.WriteString("\n## Recurring Payments\n\n")
		for _, merchant := range analysis.Recurring {
			fmt.Fprintf(&b, "- %s: %d payments, average %.2f\n",
				merchant.Merchant, merchant.Count, merchant.Average)
		}
	}
	return b.String()
}
