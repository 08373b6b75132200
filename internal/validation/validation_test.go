package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/model"
)

var startDate = time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC)

func TestValidateCreateTransaction(t *testing.T) {
	valid := request.CreateTransactionRequest{
		Date:   "2025-06-01",
		User:   "Alice",
		Type:   model.TypeDeposit,
		Amount: 100,
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := ValidateCreateTransaction(valid, startDate); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	tests := []struct {
		name     string
		mutate   func(*request.CreateTransactionRequest)
		badField string
	}{
		{"empty user", func(r *request.CreateTransactionRequest) { r.User = "" }, "user"},
		{"whitespace user", func(r *request.CreateTransactionRequest) { r.User = "  " }, "user"},
		{"empty date", func(r *request.CreateTransactionRequest) { r.Date = "" }, "date"},
		{"malformed date", func(r *request.CreateTransactionRequest) { r.Date = "June 1st" }, "date"},
		{"date before start", func(r *request.CreateTransactionRequest) { r.Date = "2024-12-31" }, "date"},
		{"empty type", func(r *request.CreateTransactionRequest) { r.Type = "" }, "type"},
		{"unknown type", func(r *request.CreateTransactionRequest) { r.Type = "Transfer" }, "type"},
		{"lowercase type", func(r *request.CreateTransactionRequest) { r.Type = "deposit" }, "type"},
		{"zero amount", func(r *request.CreateTransactionRequest) { r.Amount = 0 }, "amount"},
		{"negative amount", func(r *request.CreateTransactionRequest) { r.Amount = -1 }, "amount"},
	}

	for _, tc := range tests {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			err := ValidateCreateTransaction(req, startDate)
			if err == nil {
				t.Fatal("Expected a validation error, got nil")
			}

			verr, ok := err.(*Error)
			if !ok {
				t.Fatalf("Expected *validation.Error, got %T", err)
			}
			if _, found := verr.Fields[tc.badField]; !found {
				t.Errorf("Expected error on field %q, got %v", tc.badField, verr.Fields)
			}
		})
	}
}

func TestValidateDeleteWallet(t *testing.T) {
	t.Run("requires an exact confirmation match", func(t *testing.T) {
		if err := ValidateDeleteWallet("Alice", "Alice"); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
		if err := ValidateDeleteWallet("Alice", "alice"); err == nil {
			t.Error("Expected an error for case mismatch")
		}
		if err := ValidateDeleteWallet("Alice", ""); err == nil {
			t.Error("Expected an error for empty confirmation")
		}
	})
}

func TestValidateSaveNav(t *testing.T) {
	t.Run("accepts valid points", func(t *testing.T) {
		points := []request.NavPointRequest{
			{Date: "2025-06-01", NAV: 100},
			{Date: "2025-06-02", NAV: 0},
		}
		if err := ValidateSaveNav(points, startDate); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		if err := ValidateSaveNav(nil, startDate); err == nil {
			t.Error("Expected an error for empty batch")
		}
	})

	t.Run("names the offending row", func(t *testing.T) {
		points := []request.NavPointRequest{
			{Date: "2025-06-01", NAV: 100},
			{Date: "2025-06-02", NAV: -1},
		}

		err := ValidateSaveNav(points, startDate)
		if err == nil {
			t.Fatal("Expected a validation error, got nil")
		}
		if !strings.Contains(err.Error(), "points[1]") {
			t.Errorf("Expected error to name points[1], got %q", err.Error())
		}
	})
}

func TestErrorFormatting(t *testing.T) {
	t.Run("sorts fields deterministically", func(t *testing.T) {
		err := &Error{Fields: map[string]string{
			"user": "user is required",
			"date": "date is required",
		}}

		want := "date: date is required; user: user is required"
		if err.Error() != want {
			t.Errorf("Expected %q, got %q", want, err.Error())
		}
	})
}
