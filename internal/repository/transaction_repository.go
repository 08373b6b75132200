package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// TransactionRepository provides data access methods for the fund_transaction table.
// Records are append-only: they are inserted, bulk-deleted per user, or
// replaced wholesale on restore, never updated in place.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetAll retrieves the full transaction history in simulation order:
// chronological across days, insertion order within a day. The ledger
// engine depends on this ordering.
func (r *TransactionRepository) GetAll() ([]model.Transaction, error) {
	query := `
		SELECT id, date, user, type, amount, created_at
		FROM fund_transaction
		ORDER BY date ASC, created_at ASC, rowid ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(&t.ID, &dateStr, &t.User, &t.Type, &t.Amount, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund_transaction results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = parseTimestamp(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund_transaction table: %w", err)
	}

	return transactions, nil
}

// GetUsers returns the distinct user identifiers that currently have at
// least one transaction, sorted ascending.
func (r *TransactionRepository) GetUsers() ([]string, error) {
	query := `
		SELECT DISTINCT user
		FROM fund_transaction
		WHERE user != ''
		ORDER BY user ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund_transaction users: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var user string
		if err := rows.Scan(&user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund_transaction users: %w", err)
	}

	return users, nil
}

// Insert appends one transaction to the history.
func (r *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO fund_transaction (id, date, user, type, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.User,
		t.Type,
		t.Amount,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into fund_transaction table: %w", err)
	}

	return nil
}

// DeleteByUser removes every transaction belonging to the given user and
// returns the number of records removed.
func (r *TransactionRepository) DeleteByUser(ctx context.Context, user string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fund_transaction WHERE user = ?`, user)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from fund_transaction table: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted transactions: %w", err)
	}

	return removed, nil
}

// ReplaceAll swaps the entire transaction history for the given records
// inside one database transaction, so a failed restore leaves the old
// history intact.
func (r *TransactionRepository) ReplaceAll(ctx context.Context, transactions []model.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore transaction: %w", err)
	}
	defer dbTx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM fund_transaction`); err != nil {
		return fmt.Errorf("failed to clear fund_transaction table: %w", err)
	}

	insertQuery := `
		INSERT INTO fund_transaction (id, date, user, type, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, t := range transactions {
		_, err := dbTx.ExecContext(ctx, insertQuery,
			t.ID,
			t.Date.Format("2006-01-02"),
			t.User,
			t.Type,
			t.Amount,
			t.CreatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert restored transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	return nil
}

// parseTimestamp parses DATETIME values written either by this backend
// (RFC3339) or by sqlite's CURRENT_TIMESTAMP default.
func parseTimestamp(str string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, str)
	if err != nil {
		ts, err = time.Parse("2006-01-02 15:04:05", str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp: %w", err)
		}
	}
	return ts.UTC(), nil
}
