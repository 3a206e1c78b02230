// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID      int    `json:"id"`
	OwnerID int64  `json:"-"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
}

// Transaction is always carried joined with its category; amounts stay
// decimal end to end, never binary floating point.
type Transaction struct {
	ID          int             `json:"id"`
	OwnerID     int64           `json:"-"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Category    Category        `json:"category"`
}

// LedgerSummary groups a user's transactions by UTC calendar month.
// Keys are zero-padded "YYYY-MM"; CurrentMonth is set only for
// single-month queries and names the resolved target month.
type LedgerSummary struct {
	Transactions map[string][]Transaction `json:"transactions"`
	Total        decimal.Decimal          `json:"total"`
	CurrentMonth string                   `json:"currentMonth,omitempty"`
}

// DefaultCategories is the fixed seed set, in seed order. Seeding is
// deliberately not idempotent: every call creates a fresh full set.
var DefaultCategories = []Category{
	{Name: "Food & Dining", Color: "#FF6B6B"},
	{Name: "Transportation", Color: "#4ECDC4"},
	{Name: "Shopping", Color: "#45B7D1"},
	{Name: "Entertainment", Color: "#96CEB4"},
	{Name: "Bills & Utilities", Color: "#FFEAA7"},
	{Name: "Healthcare", Color: "#DDA0DD"},
	{Name: "Education", Color: "#98D8C8"},
	{Name: "Travel", Color: "#6C5CE7"},
}
