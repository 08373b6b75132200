package model

import "time"

// ValuationSnapshot is one materialized per-user valuation row, written by
// the snapshot scheduler. Unlike the derived ledger these rows persist, so
// historical valuations remain queryable without replaying the full
// transaction history.
type ValuationSnapshot struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	User         string    `json:"user"`
	Shares       float64   `json:"shares"`
	Value        float64   `json:"value"`
	AfterFees    float64   `json:"afterFees"`
	Profit       float64   `json:"profit"`
	CalculatedAt time.Time `json:"calculatedAt"`
}
