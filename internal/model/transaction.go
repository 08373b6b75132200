package model

import "time"

// DateOnly is the calendar-day format used for all dates in the system.
const DateOnly = "2006-01-02"

// Transaction types. Any other value is ignored by the ledger engine.
const (
	TypeDeposit    = "Deposit"
	TypeWithdrawal = "Withdrawal"
)

// Transaction represents a single deposit into or withdrawal from the fund.
// Records are append-only; they are never edited, only bulk-deleted per user.
type Transaction struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	User      string    `json:"user"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
