package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// MakeID generates a unique ID for test records.
func MakeID() string {
	return uuid.New().String()
}

// TransactionBuilder provides a fluent interface for creating test
// transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithUser("Alice").
//	    WithDate("2025-06-01").
//	    Withdrawal(50).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Date      string
	User      string
	Type      string
	Amount    float64
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Date:      "2025-06-01",
		User:      "Test User",
		Type:      model.TypeDeposit,
		Amount:    100,
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithUser sets the owning user.
func (b *TransactionBuilder) WithUser(user string) *TransactionBuilder {
	b.User = user
	return b
}

// WithAmount sets the amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// Deposit marks the transaction as a deposit of the given amount.
func (b *TransactionBuilder) Deposit(amount float64) *TransactionBuilder {
	b.Type = model.TypeDeposit
	b.Amount = amount
	return b
}

// Withdrawal marks the transaction as a withdrawal of the given amount.
func (b *TransactionBuilder) Withdrawal(amount float64) *TransactionBuilder {
	b.Type = model.TypeWithdrawal
	b.Amount = amount
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	date, err := time.Parse(model.DateOnly, b.Date)
	if err != nil {
		t.Fatalf("Failed to parse transaction date: %v", err)
	}

	query := `
		INSERT INTO fund_transaction (id, date, user, type, amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = db.Exec(query, b.ID, b.Date, b.User, b.Type, b.Amount, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Date:      date,
		User:      b.User,
		Type:      b.Type,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
	}
}

// NavPointBuilder provides a fluent interface for creating test NAV points.
//
// Example usage:
//
//	testutil.NewNavPoint().WithDate("2025-06-01").WithNAV(150).Build(t, db)
type NavPointBuilder struct {
	Date string
	NAV  float64
}

// NewNavPoint creates a NavPointBuilder with sensible defaults.
func NewNavPoint() *NavPointBuilder {
	return &NavPointBuilder{
		Date: "2025-06-01",
		NAV:  100,
	}
}

// WithDate sets the date (YYYY-MM-DD).
func (b *NavPointBuilder) WithDate(date string) *NavPointBuilder {
	b.Date = date
	return b
}

// WithNAV sets the recorded total fund value.
func (b *NavPointBuilder) WithNAV(nav float64) *NavPointBuilder {
	b.NAV = nav
	return b
}

// Build creates the NAV point in the database and returns it.
func (b *NavPointBuilder) Build(t *testing.T, db *sql.DB) model.NavPoint {
	t.Helper()

	date, err := time.Parse(model.DateOnly, b.Date)
	if err != nil {
		t.Fatalf("Failed to parse NAV date: %v", err)
	}

	query := `
		INSERT INTO nav_point (date, nav)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET nav = excluded.nav
	`
	if _, err := db.Exec(query, b.Date, b.NAV); err != nil {
		t.Fatalf("Failed to insert test NAV point: %v", err)
	}

	return model.NavPoint{Date: date, NAV: b.NAV}
}

// AuditEventBuilder provides a fluent interface for creating test audit
// events.
type AuditEventBuilder struct {
	ID        string
	Timestamp time.Time
	Action    string
	Details   string
	Admin     string
}

// NewAuditEvent creates an AuditEventBuilder with sensible defaults.
func NewAuditEvent() *AuditEventBuilder {
	return &AuditEventBuilder{
		ID:        MakeID(),
		Timestamp: time.Now().UTC(),
		Action:    model.ActionAddTx,
		Details:   "Test event",
		Admin:     "Admin",
	}
}

// WithAction sets the audit action.
func (b *AuditEventBuilder) WithAction(action string) *AuditEventBuilder {
	b.Action = action
	return b
}

// WithTimestamp sets the event timestamp.
func (b *AuditEventBuilder) WithTimestamp(ts time.Time) *AuditEventBuilder {
	b.Timestamp = ts
	return b
}

// WithDetails sets the details text.
func (b *AuditEventBuilder) WithDetails(details string) *AuditEventBuilder {
	b.Details = details
	return b
}

// WithAdmin sets the acting admin.
func (b *AuditEventBuilder) WithAdmin(admin string) *AuditEventBuilder {
	b.Admin = admin
	return b
}

// Build creates the audit event in the database and returns it.
func (b *AuditEventBuilder) Build(t *testing.T, db *sql.DB) model.AuditEvent {
	t.Helper()

	query := `
		INSERT INTO audit_event (id, timestamp, action, details, admin)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.Timestamp.Format(time.RFC3339), b.Action, b.Details, b.Admin)
	if err != nil {
		t.Fatalf("Failed to insert test audit event: %v", err)
	}

	return model.AuditEvent{
		ID:        b.ID,
		Timestamp: b.Timestamp,
		Action:    b.Action,
		Details:   b.Details,
		Admin:     b.Admin,
	}
}
