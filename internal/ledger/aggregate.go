// internal/ledger/aggregate.go
package ledger

import (
	"sort"
	"time"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// MonthKey derives the month bucket of a transaction date: the UTC
// calendar year-month, zero-padded ("2024-03"). Zero padding keeps
// lexicographic order equal to chronological order.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Summarize groups an owner-scoped transaction list by month bucket and
// computes the exact-decimal grand total. Input order is preserved
// within each bucket (storage returns date descending). A nil or empty
// input yields an empty map and a zero total, not an error.
func Summarize(transactions []domain.Transaction) domain.LedgerSummary {
	summary := domain.LedgerSummary{
		Transactions: make(map[string][]domain.Transaction),
		Total:        decimal.Zero,
	}
	for _, tx := range transactions {
		key := MonthKey(tx.Date)
		summary.Transactions[key] = append(summary.Transactions[key], tx)
		summary.Total = summary.Total.Add(tx.Amount)
	}
	return summary
}

// MonthTotal sums one bucket's amounts. Buckets keep amounts as
// decimals, so consumers derive per-month totals without drift instead
// of the summary storing them redundantly.
func MonthTotal(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

// SortedMonths returns the summary's month keys newest first, the order
// presentation renders them in.
func SortedMonths(summary domain.LedgerSummary) []string {
	keys := make([]string, 0, len(summary.Transactions))
	for key := range summary.Transactions {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}
