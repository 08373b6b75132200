package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Setting keys.
const (
	SettingWithdrawFee = "withdraw_fee"
	SettingProfitFee   = "profit_fee"
)

// SettingRepository provides data access methods for the setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetFloat reads one setting as a float64. Returns the fallback when the
// key has never been written.
func (r *SettingRepository) GetFloat(key string, fallback float64) (float64, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE "key" = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query setting table: %w", err)
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse setting %s: %w", key, err)
	}

	return parsed, nil
}

// SetFloat writes one setting, overwriting any existing value.
func (r *SettingRepository) SetFloat(ctx context.Context, key string, value float64) error {
	query := `
		INSERT INTO setting ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		key,
		strconv.FormatFloat(value, 'f', -1, 64),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into setting table: %w", err)
	}

	return nil
}
