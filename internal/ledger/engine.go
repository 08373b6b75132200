// Package ledger implements the fund share-accounting engine. It converts
// the full transaction history and the daily NAV series into per-day
// NAV-per-share prices, per-user share balances, valuations, profit and
// fees. Everything here is a pure function of its inputs: no I/O, no
// hidden state, safe for any number of concurrent callers.
package ledger

import (
	"math"
	"sort"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// Result is the fully reconciled output of one engine run.
//
// NavPerShare holds the end-of-day valuation price per date, which is
// distinct from the intra-day execution price recorded on each ledger
// entry: transactions on a day all execute at the price derived from the
// share total before that day's transactions, while the end-of-day price
// is derived from the total after them. Chart rendering depends on the
// end-of-day value, transaction pricing on the intra-day one, so both are
// kept.
type Result struct {
	// Dates is the sorted union of every date carrying a NAV point or a
	// transaction, formatted as model.DateOnly.
	Dates []string

	// NavPerShare maps each date in Dates to its end-of-day price.
	NavPerShare map[string]float64

	UserShares map[string]float64
	UserValue  map[string]float64
	AfterFees  map[string]float64
	Profit     map[string]float64
	Fees       map[string]model.FeeBreakdown

	ShareLedger []model.LedgerEntry
}

// CurrentNavPerShare returns the end-of-day price of the last simulated
// date, or the 1.0 bootstrap price when no dates exist.
func (r Result) CurrentNavPerShare() float64 {
	if len(r.Dates) == 0 {
		return 1.0
	}
	return r.NavPerShare[r.Dates[len(r.Dates)-1]]
}

// Compute replays the full history in a single chronological pass.
//
// navHistory maps model.DateOnly dates to total fund value; dates with
// transactions but no NAV point price at NaN, which propagates into the
// affected valuations rather than failing the run. withdrawFee and
// profitFee are fractions; the profit fee is only ever applied to
// positive profit.
//
// Share conservation holds at every day boundary: the sum of per-user
// balances equals total shares outstanding, and no balance ever goes
// negative. Withdrawal requests exceeding a user's balance are silently
// clamped to it, never rejected.
func Compute(transactions []model.Transaction, navHistory map[string]float64, withdrawFee, profitFee float64) Result {
	res := Result{
		NavPerShare: map[string]float64{},
		UserShares:  map[string]float64{},
		UserValue:   map[string]float64{},
		AfterFees:   map[string]float64{},
		Profit:      map[string]float64{},
		Fees:        map[string]model.FeeBreakdown{},
		ShareLedger: []model.LedgerEntry{},
	}

	// Group transactions by day, preserving insertion order within a day.
	txsByDate := make(map[string][]model.Transaction)
	dateSet := make(map[string]bool)
	for _, tx := range transactions {
		d := tx.Date.Format(model.DateOnly)
		txsByDate[d] = append(txsByDate[d], tx)
		dateSet[d] = true
	}
	for d := range navHistory {
		dateSet[d] = true
	}

	if len(dateSet) == 0 {
		return res
	}

	allDates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		allDates = append(allDates, d)
	}
	sort.Strings(allDates)
	res.Dates = allDates

	totalShares := 0.0
	balances := make(map[string]float64)
	for _, tx := range transactions {
		if tx.User != "" {
			balances[tx.User] = 0.0
		}
	}

	for _, d := range allDates {
		nav, ok := navHistory[d]
		if !ok {
			nav = math.NaN()
		}

		// Intra-day execution price: derived from the share total before
		// any of this day's transactions are applied, so the whole day
		// trades at one price regardless of processing order.
		price := 1.0
		if totalShares > 0 {
			price = nav / totalShares
		}

		for _, tx := range txsByDate[d] {
			switch tx.Type {
			case model.TypeDeposit:
				shares := 0.0
				if price > 0 {
					shares = tx.Amount / price
				}
				totalShares += shares
				balances[tx.User] += shares
				res.ShareLedger = append(res.ShareLedger, model.LedgerEntry{
					Date:        tx.Date,
					User:        tx.User,
					Type:        tx.Type,
					Amount:      model.Float(tx.Amount),
					Shares:      model.Float(shares),
					NavPerShare: model.Float(price),
				})
			case model.TypeWithdrawal:
				shares := 0.0
				if price > 0 {
					shares = tx.Amount / price
				}
				// A user can never withdraw more shares than owned;
				// over-requests truncate silently.
				if shares > balances[tx.User] {
					shares = balances[tx.User]
				}
				paid := shares * price
				totalShares -= shares
				balances[tx.User] -= shares
				res.ShareLedger = append(res.ShareLedger, model.LedgerEntry{
					Date:        tx.Date,
					User:        tx.User,
					Type:        tx.Type,
					Amount:      model.Float(-paid),
					Shares:      model.Float(shares),
					NavPerShare: model.Float(price),
				})
			default:
				// Unknown types are skipped, not errors.
			}
		}

		// End-of-day valuation price, recomputed from the post-transaction
		// share total.
		if totalShares > 0 {
			res.NavPerShare[d] = nav / totalShares
		} else {
			res.NavPerShare[d] = 1.0
		}
	}

	currentPrice := res.CurrentNavPerShare()

	depositSum := make(map[string]float64)
	withdrawalSum := make(map[string]float64)
	for _, entry := range res.ShareLedger {
		switch entry.Type {
		case model.TypeDeposit:
			depositSum[entry.User] += float64(entry.Amount)
		case model.TypeWithdrawal:
			// Ledger withdrawal amounts are negative; negate them back to
			// positive for the aggregate.
			withdrawalSum[entry.User] += -float64(entry.Amount)
		}
	}

	for user, shares := range balances {
		value := shares * currentPrice
		profit := value - depositSum[user] + withdrawalSum[user]
		withdrawalFeeAmt := value * withdrawFee
		profitFeeAmt := math.Max(profit, 0) * profitFee

		res.UserShares[user] = shares
		res.UserValue[user] = value
		res.Profit[user] = profit
		res.AfterFees[user] = value - withdrawalFeeAmt - profitFeeAmt
		res.Fees[user] = model.FeeBreakdown{
			WithdrawalFee: model.Float(withdrawalFeeAmt),
			ProfitFee:     model.Float(profitFeeAmt),
		}
	}

	return res
}
