package repository_test

import (
	"context"
	"testing"

	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
	"github.com/poeconomics/fundbank-backend/internal/testutil"
)

func TestTransactionRepository_GetAll(t *testing.T) {
	t.Run("orders across days by date, within a day by insertion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		// Inserted out of date order; same-day rows keep insertion order.
		testutil.NewTransaction().WithUser("Bob").WithDate("2025-06-02").Deposit(20).Build(t, db)
		testutil.NewTransaction().WithUser("Alice").WithDate("2025-06-01").Deposit(10).Build(t, db)
		testutil.NewTransaction().WithUser("Carol").WithDate("2025-06-02").Deposit(30).Build(t, db)

		all, err := repo.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}

		got := make([]string, len(all))
		for i, tx := range all {
			got[i] = tx.User
		}
		want := []string{"Alice", "Bob", "Carol"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Expected order %v, got %v", want, got)
			}
		}
	})

	t.Run("returns empty slice for an empty table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		all, err := repo.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", all)
		}
	})
}

func TestTransactionRepository_GetUsers(t *testing.T) {
	t.Run("deduplicates and sorts users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		testutil.NewTransaction().WithUser("Bob").Deposit(1).Build(t, db)
		testutil.NewTransaction().WithUser("Alice").Deposit(1).Build(t, db)
		testutil.NewTransaction().WithUser("Alice").Withdrawal(1).Build(t, db)

		users, err := repo.GetUsers()
		if err != nil {
			t.Fatalf("GetUsers() returned unexpected error: %v", err)
		}
		if len(users) != 2 || users[0] != "Alice" || users[1] != "Bob" {
			t.Errorf("Expected [Alice Bob], got %v", users)
		}
	})
}

func TestTransactionRepository_ReplaceAll(t *testing.T) {
	t.Run("swaps the history wholesale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		testutil.NewTransaction().WithUser("Old").Deposit(1).Build(t, db)

		incoming := []model.Transaction{
			testutil.Tx("2025-06-01", "Alice", model.TypeDeposit, 100),
			testutil.Tx("2025-06-01", "Bob", model.TypeDeposit, 50),
		}
		if err := repo.ReplaceAll(context.Background(), incoming); err != nil {
			t.Fatalf("ReplaceAll() returned unexpected error: %v", err)
		}

		all, err := repo.GetAll()
		if err != nil {
			t.Fatalf("GetAll() returned unexpected error: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(all))
		}

		// Same-day restore preserves file order through rowid.
		if all[0].User != "Alice" || all[1].User != "Bob" {
			t.Errorf("Expected [Alice Bob], got [%s %s]", all[0].User, all[1].User)
		}
	})
}
