// internal/service/ledger.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/ledger"
	"finance-tracker/internal/storage"

	"github.com/shopspring/decimal"
)

// LedgerService is the public contract consumed by the presentation
// layer. The owner id always comes from the authenticated identity and
// is threaded through every storage call; it is never client-supplied.
type LedgerService struct {
	categories   storage.CategoryStorage
	transactions storage.TransactionStorage
	now          func() time.Time
}

func NewLedgerService(categories storage.CategoryStorage, transactions storage.TransactionStorage) *LedgerService {
	return &LedgerService{
		categories:   categories,
		transactions: transactions,
		now:          time.Now,
	}
}

type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CategoryID  int
}

// GetAll returns the owner's full ledger grouped by month, without a
// current-month marker.
func (s *LedgerService) GetAll(ctx context.Context, ownerID int64) (domain.LedgerSummary, error) {
	transactions, err := s.transactions.ListTransactions(ctx, ownerID)
	if err != nil {
		return domain.LedgerSummary{}, fmt.Errorf("get all transactions: %w", err)
	}
	return ledger.Summarize(transactions), nil
}

// GetByMonth returns the ledger restricted to one UTC calendar month.
// Zero year/month mean "not supplied" and default to the server's
// current date. CurrentMonth names the resolved target even when no
// transactions matched.
func (s *LedgerService) GetByMonth(ctx context.Context, ownerID int64, year, month int) (domain.LedgerSummary, error) {
	if month != 0 && (month < 1 || month > 12) {
		return domain.LedgerSummary{}, domain.NewValidationError("month", "must be between 1 and 12")
	}

	today := s.now().UTC()
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)

	transactions, err := s.transactions.ListTransactionsByRange(ctx, ownerID, from, to)
	if err != nil {
		return domain.LedgerSummary{}, fmt.Errorf("get transactions by month: %w", err)
	}

	summary := ledger.Summarize(transactions)
	summary.CurrentMonth = ledger.MonthKey(from)
	return summary, nil
}

// CreateTransaction validates input, re-checks that the category belongs
// to the owner, then persists. The ownership pre-check means a foreign
// or unknown category id fails with ErrForbidden before storage sees
// the insert, on top of the FK the schema enforces.
func (s *LedgerService) CreateTransaction(ctx context.Context, ownerID int64, input CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.NewValidationError("amount", "must be positive")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.NewValidationError("description", "must not be empty")
	}
	if input.Date.IsZero() {
		return nil, domain.NewValidationError("date", "is required")
	}

	if _, err := s.categories.GetCategory(ctx, ownerID, input.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("category %d: %w", input.CategoryID, domain.ErrForbidden)
		}
		return nil, fmt.Errorf("check category ownership: %w", err)
	}

	transaction, err := s.transactions.CreateTransaction(ctx, ownerID, input.Amount, input.Description, input.Date, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	slog.Info("transaction created", "user_id", ownerID, "id", transaction.ID, "amount", transaction.Amount)
	return transaction, nil
}

// DeleteTransaction propagates ErrNotFound unchanged: the caller cannot
// tell a row that never existed from one a concurrent call already
// removed, and does not need to.
func (s *LedgerService) DeleteTransaction(ctx context.Context, ownerID int64, id int) error {
	if err := s.transactions.DeleteTransaction(ctx, ownerID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}

	slog.Info("transaction deleted", "user_id", ownerID, "id", id)
	return nil
}

func (s *LedgerService) ListCategories(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	categories, err := s.categories.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *LedgerService) CreateCategory(ctx context.Context, ownerID int64, name, color string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}

	category, err := s.categories.CreateCategory(ctx, ownerID, name, color)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	slog.Info("category created", "user_id", ownerID, "id", category.ID, "name", category.Name)
	return category, nil
}

// SeedDefaultCategories creates the fixed default set for the owner.
// Not idempotent: a second call creates a second full set.
func (s *LedgerService) SeedDefaultCategories(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	categories, err := s.categories.CreateDefaultCategories(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("seed default categories: %w", err)
	}

	slog.Info("default categories seeded", "user_id", ownerID, "count", len(categories))
	return categories, nil
}
