// internal/ledger/aggregate_test.go
package ledger

import (
	"testing"
	"time"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

func tx(amount string, date time.Time) domain.Transaction {
	return domain.Transaction{
		Amount:      decimal.RequireFromString(amount),
		Description: "test",
		Date:        date,
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "zero padded month",
			date: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
			want: "2024-03",
		},
		{
			name: "december stays in december",
			date: time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
			want: "2023-12",
		},
		{
			name: "non-UTC date bucketed by its UTC month",
			date: time.Date(2024, 4, 1, 1, 30, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			want: "2024-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthKey(tt.date); got != tt.want {
				t.Errorf("MonthKey(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	march5 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	march20 := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	april1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	// Storage order: date descending.
	input := []domain.Transaction{
		tx("5.00", april1),
		tx("25.00", march20),
		tx("10.50", march5),
	}

	summary := Summarize(input)

	if want := decimal.RequireFromString("40.50"); !summary.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", summary.Total, want)
	}
	if len(summary.Transactions) != 2 {
		t.Fatalf("got %d month buckets, want 2", len(summary.Transactions))
	}

	march := summary.Transactions["2024-03"]
	if len(march) != 2 {
		t.Fatalf("2024-03 has %d transactions, want 2", len(march))
	}
	if !march[0].Amount.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("2024-03 first transaction amount = %s, want 25.00 (storage order preserved)", march[0].Amount)
	}
	if len(summary.Transactions["2024-04"]) != 1 {
		t.Errorf("2024-04 has %d transactions, want 1", len(summary.Transactions["2024-04"]))
	}
	if summary.CurrentMonth != "" {
		t.Errorf("CurrentMonth = %q, want empty", summary.CurrentMonth)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if len(summary.Transactions) != 0 {
		t.Errorf("got %d buckets for empty input, want 0", len(summary.Transactions))
	}
	if !summary.Total.IsZero() {
		t.Errorf("Total = %s for empty input, want 0", summary.Total)
	}
}

// Ten times 0.10 must be exactly 1, where float64 accumulation drifts.
func TestSummarizeExactDecimalTotal(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	var input []domain.Transaction
	for i := 0; i < 10; i++ {
		input = append(input, tx("0.10", date))
	}

	summary := Summarize(input)

	if !summary.Total.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Total = %s, want exactly 1", summary.Total)
	}
}

func TestSummarizePartition(t *testing.T) {
	dates := []time.Time{
		time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
	}
	var input []domain.Transaction
	for _, d := range dates {
		input = append(input, tx("1.00", d))
	}

	summary := Summarize(input)

	// Every transaction lands in exactly one bucket.
	count := 0
	for key, bucket := range summary.Transactions {
		for _, transaction := range bucket {
			if MonthKey(transaction.Date) != key {
				t.Errorf("transaction dated %v in bucket %q", transaction.Date, key)
			}
			count++
		}
	}
	if count != len(input) {
		t.Errorf("buckets hold %d transactions, want %d", count, len(input))
	}

	wantKeys := map[string]bool{"2023-11": true, "2023-12": true, "2024-01": true}
	for key := range summary.Transactions {
		if !wantKeys[key] {
			t.Errorf("unexpected bucket %q", key)
		}
		delete(wantKeys, key)
	}
	for key := range wantKeys {
		t.Errorf("missing bucket %q", key)
	}
}

func TestMonthTotal(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bucket := []domain.Transaction{
		tx("10.50", date),
		tx("25.00", date),
	}

	if got := MonthTotal(bucket); !got.Equal(decimal.RequireFromString("35.50")) {
		t.Errorf("MonthTotal = %s, want 35.50", got)
	}
	if got := MonthTotal(nil); !got.IsZero() {
		t.Errorf("MonthTotal(nil) = %s, want 0", got)
	}
}

func TestSortedMonths(t *testing.T) {
	input := []domain.Transaction{
		tx("1.00", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		tx("1.00", time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)),
		tx("1.00", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
	}

	got := SortedMonths(Summarize(input))
	want := []string{"2024-03", "2024-01", "2023-12"}

	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedMonths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
