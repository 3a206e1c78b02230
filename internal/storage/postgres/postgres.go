// internal/storage/postgres/postgres.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"finance-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}

// === CategoryStorage ===

func (s *Storage) ListCategories(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, COALESCE(color, '')
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Storage) GetCategory(ctx context.Context, ownerID int64, id int) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, COALESCE(color, '')
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, id, ownerID).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *Storage) CreateCategory(ctx context.Context, ownerID int64, name, color string) (*domain.Category, error) {
	c := domain.Category{OwnerID: ownerID, Name: name, Color: color}
	err := s.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, color)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id
	`, ownerID, name, color).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *Storage) CreateDefaultCategories(ctx context.Context, ownerID int64) ([]domain.Category, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	created := make([]domain.Category, 0, len(domain.DefaultCategories))
	for _, seed := range domain.DefaultCategories {
		c := domain.Category{OwnerID: ownerID, Name: seed.Name, Color: seed.Color}
		err := tx.QueryRow(ctx, `
			INSERT INTO categories (user_id, name, color)
			VALUES ($1, $2, $3)
			RETURNING id
		`, ownerID, seed.Name, seed.Color).Scan(&c.ID)
		if err != nil {
			return nil, fmt.Errorf("seed category %q: %w", seed.Name, err)
		}
		created = append(created, c)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	slog.Debug("default categories seeded", "user_id", ownerID, "count", len(created))
	return created, nil
}

// === TransactionStorage ===

const transactionColumns = `
	t.id, t.user_id, t.amount, t.description, t.date,
	c.id, c.user_id, c.name, COALESCE(c.color, '')`

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Amount, &t.Description, &t.Date,
		&t.Category.ID, &t.Category.OwnerID, &t.Category.Name, &t.Category.Color,
	)
	return t, err
}

func (s *Storage) ListTransactions(ctx context.Context, ownerID int64) ([]domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (s *Storage) ListTransactionsByRange(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date DESC
	`, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions by range: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	return transactions, nil
}

func (s *Storage) CreateTransaction(ctx context.Context, ownerID int64, amount decimal.Decimal, description string, date time.Time, categoryID int) (*domain.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO transactions (user_id, category_id, amount, description, date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, user_id, category_id, amount, description, date
		)
		SELECT `+transactionColumns+`
		FROM inserted t
		JOIN categories c ON c.id = t.category_id
	`, ownerID, categoryID, amount, description, date))
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	slog.Debug("transaction created", "user_id", ownerID, "id", t.ID)
	return &t, nil
}

// DeleteTransaction deletes in a single owner-scoped statement, so no
// window exists between lookup and delete. Zero rows affected means the
// row never existed for this owner or was already gone; either way the
// caller sees not found.
func (s *Storage) DeleteTransaction(ctx context.Context, ownerID int64, id int) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
