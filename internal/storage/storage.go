// internal/storage/storage.go
package storage

import (
	"context"
	"time"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// Every query takes the owner id as a mandatory parameter: absence of a
// row under that scope is the not-found signal, there is no unscoped
// fetch followed by an ownership check.

type CategoryStorage interface {
	// ListCategories returns the owner's categories ordered by name ascending.
	ListCategories(ctx context.Context, ownerID int64) ([]domain.Category, error)
	// GetCategory returns domain.ErrNotFound when the owner has no such category.
	GetCategory(ctx context.Context, ownerID int64, id int) (*domain.Category, error)
	CreateCategory(ctx context.Context, ownerID int64, name, color string) (*domain.Category, error)
	// CreateDefaultCategories inserts the full default set in seed order.
	// Calling it twice creates two full sets.
	CreateDefaultCategories(ctx context.Context, ownerID int64) ([]domain.Category, error)
}

type TransactionStorage interface {
	// ListTransactions returns the owner's transactions joined with their
	// categories, ordered by date descending.
	ListTransactions(ctx context.Context, ownerID int64) ([]domain.Transaction, error)
	// ListTransactionsByRange returns the owner's transactions with
	// from <= date <= to, joined and ordered by date descending.
	ListTransactionsByRange(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.Transaction, error)
	CreateTransaction(ctx context.Context, ownerID int64, amount decimal.Decimal, description string, date time.Time, categoryID int) (*domain.Transaction, error)
	// DeleteTransaction removes the owner's transaction atomically
	// (delete-if-owned) and returns domain.ErrNotFound when no row matched.
	DeleteTransaction(ctx context.Context, ownerID int64, id int) error
}
