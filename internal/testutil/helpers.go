package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
	"github.com/poeconomics/fundbank-backend/internal/service"
)

// TestStartDate is the fund start date used across service tests.
var TestStartDate = time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestAuditService(t *testing.T, db *sql.DB) *service.AuditService {
	t.Helper()

	auditRepo := repository.NewAuditRepository(db)

	return service.NewAuditService(auditRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		NewTestAuditService(t, db),
		service.NewWriteLock(),
	)
}

func NewTestNavService(t *testing.T, db *sql.DB) *service.NavService {
	t.Helper()

	navRepo := repository.NewNavRepository(db)

	return service.NewNavService(
		navRepo,
		NewTestAuditService(t, db),
		service.NewWriteLock(),
		TestStartDate,
	)
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)

	return service.NewSettingsService(
		settingRepo,
		NewTestAuditService(t, db),
		service.NewWriteLock(),
		0.03,
		0.02,
	)
}

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(
		NewTestTransactionService(t, db),
		NewTestNavService(t, db),
		NewTestSettingsService(t, db),
	)
}

func NewTestBackupService(t *testing.T, db *sql.DB) *service.BackupService {
	t.Helper()

	return service.NewBackupService(
		NewTestTransactionService(t, db),
		NewTestNavService(t, db),
		NewTestAuditService(t, db),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewSnapshotService(
		NewTestFundService(t, db),
		snapshotRepo,
		NewTestAuditService(t, db),
	)
}

// SeedFund writes a small but complete fund history: two users, three
// NAV points, one withdrawal. Useful for handler and snapshot tests
// that need derived valuations without caring about the exact numbers.
func SeedFund(t *testing.T, db *sql.DB) {
	t.Helper()

	NewTransaction().WithUser("Alice").WithDate("2025-06-01").Deposit(100).Build(t, db)
	NewTransaction().WithUser("Bob").WithDate("2025-06-02").Deposit(100).Build(t, db)
	NewTransaction().WithUser("Alice").WithDate("2025-06-03").Withdrawal(50).Build(t, db)

	NewNavPoint().WithDate("2025-06-01").WithNAV(100).Build(t, db)
	NewNavPoint().WithDate("2025-06-02").WithNAV(200).Build(t, db)
	NewNavPoint().WithDate("2025-06-03").WithNAV(250).Build(t, db)
}

// AlmostEqual reports whether two floats agree within a small tolerance.
func AlmostEqual(a, b float64) bool {
	const tolerance = 1e-9
	diff := a - b
	return diff < tolerance && diff > -tolerance
}

// Tx is a shorthand constructor for in-memory transactions used by
// engine-level tests that bypass the database.
func Tx(date, user, txType string, amount float64) model.Transaction {
	d, _ := time.Parse(model.DateOnly, date)
	return model.Transaction{
		ID:     MakeID(),
		Date:   d,
		User:   user,
		Type:   txType,
		Amount: amount,
	}
}
