package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// SnapshotRepository provides data access methods for the valuation_snapshot table.
// Snapshots are materialized daily valuations written by the scheduler, so
// historical per-user values stay queryable without replaying the ledger.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert writes one snapshot row, overwriting an existing row for the same
// date and user.
func (r *SnapshotRepository) Upsert(ctx context.Context, s *model.ValuationSnapshot) error {
	query := `
		INSERT INTO valuation_snapshot (id, date, user, shares, value, after_fees, profit, calculated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, user) DO UPDATE SET
			shares = excluded.shares,
			value = excluded.value,
			after_fees = excluded.after_fees,
			profit = excluded.profit,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Date.Format("2006-01-02"),
		s.User,
		s.Shares,
		s.Value,
		s.AfterFees,
		s.Profit,
		s.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into valuation_snapshot table: %w", err)
	}

	return nil
}

// Get retrieves snapshots filtered by optional user and date range, sorted
// by date then user. Zero time values disable the corresponding bound.
func (r *SnapshotRepository) Get(user string, startDate, endDate time.Time) ([]model.ValuationSnapshot, error) {
	query := `
		SELECT id, date, user, shares, value, after_fees, profit, calculated_at
		FROM valuation_snapshot
		WHERE 1=1
	`
	args := []any{}

	if user != "" {
		query += ` AND user = ?`
		args = append(args, user)
	}
	if !startDate.IsZero() {
		query += ` AND date >= ?`
		args = append(args, startDate.Format("2006-01-02"))
	}
	if !endDate.IsZero() {
		query += ` AND date <= ?`
		args = append(args, endDate.Format("2006-01-02"))
	}

	query += ` ORDER BY date ASC, user ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuation_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.ValuationSnapshot{}

	for rows.Next() {
		var dateStr, calculatedAtStr string
		var s model.ValuationSnapshot

		err := rows.Scan(&s.ID, &dateStr, &s.User, &s.Shares, &s.Value, &s.AfterFees, &s.Profit, &calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuation_snapshot results: %w", err)
		}

		s.Date, err = ParseTime(dateStr)
		if err != nil || s.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		s.CalculatedAt, err = parseTimestamp(calculatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuation_snapshot table: %w", err)
	}

	return snapshots, nil
}
