package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// AuditRepository provides data access methods for the audit_event table.
// The audit trail is append-only and is never deleted.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new AuditRepository with the provided database connection.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit event.
func (r *AuditRepository) Insert(ctx context.Context, e *model.AuditEvent) error {
	query := `
		INSERT INTO audit_event (id, timestamp, action, details, admin)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Action,
		e.Details,
		e.Admin,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into audit_event table: %w", err)
	}

	return nil
}

// GetAll retrieves the audit trail.
// newestFirst controls sort order: true for display, false for export.
func (r *AuditRepository) GetAll(newestFirst bool) ([]model.AuditEvent, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}

	query := `
		SELECT id, timestamp, action, details, admin
		FROM audit_event
		ORDER BY timestamp ` + order + `, rowid ` + order

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit_event table: %w", err)
	}
	defer rows.Close()

	events := []model.AuditEvent{}

	for rows.Next() {
		var timestampStr string
		var e model.AuditEvent

		if err := rows.Scan(&e.ID, &timestampStr, &e.Action, &e.Details, &e.Admin); err != nil {
			return nil, fmt.Errorf("failed to scan audit_event results: %w", err)
		}

		e.Timestamp, err = parseTimestamp(timestampStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}

		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit_event table: %w", err)
	}

	return events, nil
}
