package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/testutil"
)

func setupWalletHandler(t *testing.T) (*WalletHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fs := testutil.NewTestFundService(t, db)
	ts := testutil.NewTestTransactionService(t, db)
	return NewWalletHandler(fs, ts), db
}

func TestWalletHandler_Wallets(t *testing.T) {
	t.Run("returns empty array for an empty fund", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
		w := httptest.NewRecorder()

		handler.Wallets(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.WalletSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d rows", len(response))
		}
	})

	t.Run("returns rows sorted descending by value", func(t *testing.T) {
		handler, db := setupWalletHandler(t)
		testutil.SeedFund(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
		w := httptest.NewRecorder()

		handler.Wallets(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.WalletSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(response))
		}
		if float64(response[0].Value) < float64(response[1].Value) {
			t.Errorf("Expected descending values, got %v then %v", response[0].Value, response[1].Value)
		}
	})

	t.Run("applies the search filter", func(t *testing.T) {
		handler, db := setupWalletHandler(t)
		testutil.SeedFund(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/wallet", map[string]string{"search": "BOB"})
		w := httptest.NewRecorder()

		handler.Wallets(w, req)

		var response []model.WalletSummary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 || response[0].User != "Bob" {
			t.Errorf("Expected only Bob, got %+v", response)
		}
	})
}

func TestWalletHandler_History(t *testing.T) {
	t.Run("returns empty series for an unknown user", func(t *testing.T) {
		handler, db := setupWalletHandler(t)
		testutil.SeedFund(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/wallet/Ghost/history",
			map[string]string{"user": "Ghost"},
		)
		w := httptest.NewRecorder()

		handler.History(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.WalletPoint
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 0 {
			t.Errorf("Expected empty series, got %d points", len(response))
		}
	})
}

func TestWalletHandler_DeleteWallet(t *testing.T) {
	t.Run("deletes with an exact confirmation", func(t *testing.T) {
		handler, db := setupWalletHandler(t)
		testutil.NewTransaction().WithUser("Alice").Deposit(100).Build(t, db)

		req := testutil.NewJSONRequest(
			t,
			http.MethodDelete,
			"/api/wallet/Alice",
			request.DeleteWalletRequest{Confirm: "Alice"},
			map[string]string{"user": "Alice"},
		)
		w := httptest.NewRecorder()

		handler.DeleteWallet(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]int64
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["removed"] != 1 {
			t.Errorf("Expected 1 removed, got %d", response["removed"])
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 0)
	})

	t.Run("rejects a confirmation mismatch with 400", func(t *testing.T) {
		handler, db := setupWalletHandler(t)
		testutil.NewTransaction().WithUser("Alice").Deposit(100).Build(t, db)

		req := testutil.NewJSONRequest(
			t,
			http.MethodDelete,
			"/api/wallet/Alice",
			request.DeleteWalletRequest{Confirm: "alice"},
			map[string]string{"user": "Alice"},
		)
		w := httptest.NewRecorder()

		handler.DeleteWallet(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
	})

	t.Run("returns 404 for a user with no transactions", func(t *testing.T) {
		handler, _ := setupWalletHandler(t)

		req := testutil.NewJSONRequest(
			t,
			http.MethodDelete,
			"/api/wallet/Ghost",
			request.DeleteWalletRequest{Confirm: "Ghost"},
			map[string]string{"user": "Ghost"},
		)
		w := httptest.NewRecorder()

		handler.DeleteWallet(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
