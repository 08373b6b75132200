package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TypeDeposit: true, model.TypeWithdrawal: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - user: non-empty after trimming
//   - date: YYYY-MM-DD, not before the fund start date
//   - type: Deposit or Withdrawal
//   - amount: positive
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest, startDate time.Time) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.User) == "" {
		errors["user"] = "user is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if date, err := ParseDate(req.Date); err != nil {
		errors["date"] = err.Error()
	} else if date.Before(startDate) {
		errors["date"] = fmt.Sprintf("date precedes fund start date %s", startDate.Format(model.DateOnly))
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateDeleteWallet validates the confirmed wallet deletion request.
// The confirmation text must equal the username exactly; this is the
// second factor guarding the bulk delete.
func ValidateDeleteWallet(user, confirm string) error {
	errors := make(map[string]string)

	if strings.TrimSpace(user) == "" {
		errors["user"] = "user is required"
	}
	if confirm != user {
		errors["confirm"] = "confirmation must match the username exactly"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
