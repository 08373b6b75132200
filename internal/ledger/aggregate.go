package ledger

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/model"
)

// Summaries builds one presentation row per user from an engine result,
// sorted descending by current value (NaN valuations last, ties broken by
// user for stable output). A non-empty search filters rows by
// case-insensitive substring match on the user identifier. Users with an
// empty identifier are excluded.
func Summaries(res Result, search string) []model.WalletSummary {
	search = strings.ToLower(search)

	rows := make([]model.WalletSummary, 0, len(res.UserShares))
	for user := range res.UserShares {
		if user == "" {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(user), search) {
			continue
		}
		rows = append(rows, model.WalletSummary{
			User:      user,
			Shares:    model.Float(res.UserShares[user]),
			Value:     model.Float(res.UserValue[user]),
			AfterFees: model.Float(res.AfterFees[user]),
			Profit:    model.Float(res.Profit[user]),
			Fees:      res.Fees[user],
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		vi, vj := float64(rows[i].Value), float64(rows[j].Value)
		switch {
		case math.IsNaN(vi) && math.IsNaN(vj):
			return rows[i].User < rows[j].User
		case math.IsNaN(vi):
			return false
		case math.IsNaN(vj):
			return true
		case vi != vj:
			return vi > vj
		default:
			return rows[i].User < rows[j].User
		}
	})

	return rows
}

// WalletHistory replays a user's ledger entries into a wallet-growth
// series: after each entry the running share balance is valued at the
// end-of-day price of the entry's date (1.0 when that date recorded no
// price). Returns an empty series for users without ledger entries.
func WalletHistory(res Result, user string) []model.WalletPoint {
	points := []model.WalletPoint{}
	runningShares := 0.0

	for _, entry := range res.ShareLedger {
		if entry.User != user {
			continue
		}
		switch entry.Type {
		case model.TypeDeposit:
			runningShares += float64(entry.Shares)
		case model.TypeWithdrawal:
			runningShares -= float64(entry.Shares)
		}

		price, ok := res.NavPerShare[entry.Date.Format(model.DateOnly)]
		if !ok {
			price = 1.0
		}
		points = append(points, model.WalletPoint{
			Date:  entry.Date,
			Value: model.Float(runningShares * price),
		})
	}

	return points
}

// NavPerShareSeries flattens the per-date end-of-day prices into a
// chronological series for chart rendering.
func NavPerShareSeries(res Result) []model.NavSharePoint {
	series := make([]model.NavSharePoint, 0, len(res.Dates))
	for _, d := range res.Dates {
		date, err := time.Parse(model.DateOnly, d)
		if err != nil {
			continue
		}
		series = append(series, model.NavSharePoint{
			Date:        date,
			NavPerShare: model.Float(res.NavPerShare[d]),
		})
	}
	return series
}
