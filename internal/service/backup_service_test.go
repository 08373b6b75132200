package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/testutil"
)

// TestBackupService_ExportTransactions tests the transaction CSV export.
//
// WHY: Exports are the system's only backup format; the column layout must
// stay stable so old files remain restorable.
func TestBackupService_ExportTransactions(t *testing.T) {
	t.Run("writes header and one row per transaction", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db)
		testutil.NewTransaction().WithUser("Alice").WithDate("2025-06-01").Deposit(100.5).Build(t, db)
		testutil.NewTransaction().WithUser("Bob").WithDate("2025-06-02").Withdrawal(25).Build(t, db)

		// Execute
		var buf bytes.Buffer
		if err := svc.ExportTransactions(&buf); err != nil {
			t.Fatalf("ExportTransactions() returned unexpected error: %v", err)
		}

		// Assert
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("Failed to parse exported CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("Expected header + 2 rows, got %d records", len(records))
		}
		if strings.Join(records[0], ",") != "Date,User,Type,Amount" {
			t.Errorf("Unexpected header: %v", records[0])
		}
		if strings.Join(records[1], ",") != "2025-06-01,Alice,Deposit,100.5" {
			t.Errorf("Unexpected first row: %v", records[1])
		}
	})
}

// TestBackupService_ExportNav tests the NAV CSV export.
func TestBackupService_ExportNav(t *testing.T) {
	t.Run("writes points ascending by date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db)
		testutil.NewNavPoint().WithDate("2025-06-02").WithNAV(150).Build(t, db)
		testutil.NewNavPoint().WithDate("2025-06-01").WithNAV(100).Build(t, db)

		var buf bytes.Buffer
		if err := svc.ExportNav(&buf); err != nil {
			t.Fatalf("ExportNav() returned unexpected error: %v", err)
		}

		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("Failed to parse exported CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("Expected header + 2 rows, got %d records", len(records))
		}
		if records[1][0] != "2025-06-01" || records[2][0] != "2025-06-02" {
			t.Errorf("Expected ascending dates, got %v then %v", records[1][0], records[2][0])
		}
	})
}

// TestBackupService_RestoreTransactions tests the upload path end to end.
func TestBackupService_RestoreTransactions(t *testing.T) {
	t.Run("round trips an exported file", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db)
		txSvc := testutil.NewTestTransactionService(t, db)
		testutil.NewTransaction().WithUser("Alice").WithDate("2025-06-01").Deposit(100).Build(t, db)
		testutil.NewTransaction().WithUser("Bob").WithDate("2025-06-02").Withdrawal(40).Build(t, db)

		var buf bytes.Buffer
		if err := svc.ExportTransactions(&buf); err != nil {
			t.Fatalf("ExportTransactions() returned unexpected error: %v", err)
		}

		// Execute
		restored, err := svc.RestoreTransactions(context.Background(), &buf, "Admin")

		// Assert
		if err != nil {
			t.Fatalf("RestoreTransactions() returned unexpected error: %v", err)
		}
		if restored != 2 {
			t.Errorf("Expected 2 restored records, got %d", restored)
		}

		all, err := txSvc.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("Expected 2 transactions after restore, got %d", len(all))
		}
		if all[0].User != "Alice" || all[0].Amount != 100 {
			t.Errorf("Unexpected first restored record: %+v", all[0])
		}
		if all[1].Type != "Withdrawal" || all[1].Amount != 40 {
			t.Errorf("Unexpected second restored record: %+v", all[1])
		}
	})

	t.Run("rejects a wrong header without mutating", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db)
		testutil.NewTransaction().WithUser("Keep").Deposit(1).Build(t, db)

		upload := strings.NewReader("Datum,User,Type,Amount\n2025-06-01,Alice,Deposit,100\n")
		_, err := svc.RestoreTransactions(context.Background(), upload, "Admin")
		if !errors.Is(err, apperrors.ErrMalformedRecordFile) {
			t.Fatalf("Expected ErrMalformedRecordFile, got %v", err)
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
	})

	t.Run("rejects a malformed row without mutating", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestBackupService(t, db)
		testutil.NewTransaction().WithUser("Keep").Deposit(1).Build(t, db)

		upload := strings.NewReader("Date,User,Type,Amount\n2025-06-01,Alice,Deposit,not-a-number\n")
		_, err := svc.RestoreTransactions(context.Background(), upload, "Admin")
		if !errors.Is(err, apperrors.ErrMalformedRecordFile) {
			t.Fatalf("Expected ErrMalformedRecordFile, got %v", err)
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
	})
}
