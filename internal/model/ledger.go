package model

import "time"

// LedgerEntry is one executed transaction in the derived share ledger.
// Amount carries the outflow sign convention: deposits are positive,
// withdrawals negative (the actually paid-out amount after clamping).
// Entries are recomputed from the full history on every read and never
// persisted.
type LedgerEntry struct {
	Date        time.Time `json:"date"`
	User        string    `json:"user"`
	Type        string    `json:"type"`
	Amount      Float     `json:"amount"`
	Shares      Float     `json:"shares"`
	NavPerShare Float     `json:"navPerShare"` // intra-day execution price
}

// FeeBreakdown itemizes the fees applied to one user's current value.
type FeeBreakdown struct {
	WithdrawalFee Float `json:"withdrawalFee"`
	ProfitFee     Float `json:"profitFee"`
}

// WalletSummary is one presentation row: a user's stake valued at the
// current NAV-per-share.
type WalletSummary struct {
	User      string       `json:"user"`
	Shares    Float        `json:"shares"`
	Value     Float        `json:"value"`
	AfterFees Float        `json:"afterFees"`
	Profit    Float        `json:"profit"`
	Fees      FeeBreakdown `json:"fees"`
}

// WalletPoint is one point of a user's wallet-growth series: the running
// share balance after a ledger entry, valued at that date's end-of-day
// price.
type WalletPoint struct {
	Date  time.Time `json:"date"`
	Value Float     `json:"value"`
}
