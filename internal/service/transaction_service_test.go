package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/testutil"
)

// TestTransactionService_Create tests appending deposits and withdrawals.
//
// WHY: Every valuation in the system is derived from this history, so a
// created record must land in the database exactly as given and leave an
// AddTx entry in the audit trail.
func TestTransactionService_Create(t *testing.T) {
	t.Run("persists the record and audits it", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		// Execute
		created, err := svc.Create(context.Background(), date, "Alice", model.TypeDeposit, 100, "Admin")

		// Assert
		if err != nil {
			t.Fatalf("Create() returned unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Error("Expected a generated ID")
		}

		testutil.AssertRowCount(t, db, "fund_transaction", 1)
		testutil.AssertRowCount(t, db, "audit_event", 1)

		var action string
		if err := db.QueryRow("SELECT action FROM audit_event").Scan(&action); err != nil {
			t.Fatalf("Failed to read audit event: %v", err)
		}
		if action != model.ActionAddTx {
			t.Errorf("Expected audit action %q, got %q", model.ActionAddTx, action)
		}
	})

	t.Run("preserves same-day insertion order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

		// Execute
		for _, amount := range []float64{10, 20, 30} {
			if _, err := svc.Create(context.Background(), date, "Alice", model.TypeDeposit, amount, "Admin"); err != nil {
				t.Fatalf("Create() returned unexpected error: %v", err)
			}
		}

		all, err := svc.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}

		// Assert
		if len(all) != 3 {
			t.Fatalf("Expected 3 transactions, got %d", len(all))
		}
		for i, want := range []float64{10, 20, 30} {
			if all[i].Amount != want {
				t.Errorf("Position %d: expected amount %v, got %v", i, want, all[i].Amount)
			}
		}
	})
}

// TestTransactionService_DeleteWallet tests the confirmed bulk delete.
//
// WHY: Deleting a wallet erases a user's entire history, so the exact
// username must be re-typed and a mismatch must leave the database and
// the audit trail untouched.
func TestTransactionService_DeleteWallet(t *testing.T) {
	t.Run("removes all records for the user", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.NewTransaction().WithUser("Alice").Deposit(100).Build(t, db)
		testutil.NewTransaction().WithUser("Alice").Withdrawal(50).Build(t, db)
		testutil.NewTransaction().WithUser("Bob").Deposit(200).Build(t, db)

		// Execute
		removed, err := svc.DeleteWallet(context.Background(), "Alice", "Alice", "Admin")

		// Assert
		if err != nil {
			t.Fatalf("DeleteWallet() returned unexpected error: %v", err)
		}
		if removed != 2 {
			t.Errorf("Expected 2 removed records, got %d", removed)
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
		testutil.AssertRowCount(t, db, "audit_event", 1)
	})

	t.Run("rejects a confirmation mismatch without mutating", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.NewTransaction().WithUser("Alice").Deposit(100).Build(t, db)

		// Execute
		_, err := svc.DeleteWallet(context.Background(), "Alice", "alice", "Admin")

		// Assert
		if !errors.Is(err, apperrors.ErrConfirmationMismatch) {
			t.Fatalf("Expected ErrConfirmationMismatch, got %v", err)
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
		testutil.AssertRowCount(t, db, "audit_event", 0)
	})

	t.Run("rejects an empty user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.DeleteWallet(context.Background(), "", "", "Admin")
		if !errors.Is(err, apperrors.ErrEmptyUser) {
			t.Fatalf("Expected ErrEmptyUser, got %v", err)
		}
	})

	t.Run("reports an unknown user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		_, err := svc.DeleteWallet(context.Background(), "Ghost", "Ghost", "Admin")
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
		testutil.AssertRowCount(t, db, "audit_event", 0)
	})
}

// TestTransactionService_Restore tests the wholesale history replacement.
func TestTransactionService_Restore(t *testing.T) {
	t.Run("replaces existing history", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)
		testutil.NewTransaction().WithUser("Old").Deposit(1).Build(t, db)

		incoming := []model.Transaction{
			testutil.Tx("2025-06-01", "Alice", model.TypeDeposit, 100),
			testutil.Tx("2025-06-02", "Bob", model.TypeDeposit, 50),
		}

		// Execute
		if err := svc.Restore(context.Background(), incoming, "Admin"); err != nil {
			t.Fatalf("Restore() returned unexpected error: %v", err)
		}

		// Assert
		all, err := svc.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("Expected 2 transactions after restore, got %d", len(all))
		}
		if all[0].User != "Alice" || all[1].User != "Bob" {
			t.Errorf("Unexpected users after restore: %q, %q", all[0].User, all[1].User)
		}
		testutil.AssertRowCount(t, db, "audit_event", 1)
	})
}
