package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// NavRepository provides data access methods for the nav_point table.
// One row exists per calendar day; later writes overwrite.
type NavRepository struct {
	db *sql.DB
}

// NewNavRepository creates a new NavRepository with the provided database connection.
func NewNavRepository(db *sql.DB) *NavRepository {
	return &NavRepository{db: db}
}

// GetAll retrieves every recorded NAV point sorted by date ascending.
func (r *NavRepository) GetAll() ([]model.NavPoint, error) {
	query := `
		SELECT date, nav
		FROM nav_point
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query nav_point table: %w", err)
	}
	defer rows.Close()

	points := []model.NavPoint{}

	for rows.Next() {
		var dateStr string
		var p model.NavPoint

		if err := rows.Scan(&dateStr, &p.NAV); err != nil {
			return nil, fmt.Errorf("failed to scan nav_point results: %w", err)
		}

		p.Date, err = ParseTime(dateStr)
		if err != nil || p.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating nav_point table: %w", err)
	}

	return points, nil
}

// GetHistory returns the NAV series as a date-keyed map, the shape the
// ledger engine consumes.
func (r *NavRepository) GetHistory() (map[string]float64, error) {
	points, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	history := make(map[string]float64, len(points))
	for _, p := range points {
		history[p.Date.Format("2006-01-02")] = p.NAV
	}

	return history, nil
}

// Upsert writes one NAV point, overwriting any existing value for the date.
func (r *NavRepository) Upsert(ctx context.Context, p model.NavPoint) error {
	query := `
		INSERT INTO nav_point (date, nav, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET nav = excluded.nav, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		p.Date.Format("2006-01-02"),
		p.NAV,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into nav_point table: %w", err)
	}

	return nil
}

// UpsertMany writes a batch of NAV points atomically.
func (r *NavRepository) UpsertMany(ctx context.Context, points []model.NavPoint) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin nav transaction: %w", err)
	}
	defer dbTx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	query := `
		INSERT INTO nav_point (date, nav, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET nav = excluded.nav, updated_at = excluded.updated_at
	`
	now := time.Now().UTC().Format(time.RFC3339)

	for _, p := range points {
		if _, err := dbTx.ExecContext(ctx, query, p.Date.Format("2006-01-02"), p.NAV, now); err != nil {
			return fmt.Errorf("failed to upsert nav point: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit nav batch: %w", err)
	}

	return nil
}
