package service

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/poeconomics/fundbank-backend/internal/ledger"
	"github.com/poeconomics/fundbank-backend/internal/model"
)

// FundService is the read path over the ledger engine: it loads the full
// history from the store, runs the engine, and shapes the result for
// presentation. The engine owns no persistent state, so every call
// recomputes from scratch; concurrent identical recomputations are
// collapsed through singleflight.
type FundService struct {
	transactionService *TransactionService
	navService         *NavService
	settingsService    *SettingsService

	group singleflight.Group
}

// NewFundService creates a new FundService with the provided service dependencies.
func NewFundService(
	transactionService *TransactionService,
	navService *NavService,
	settingsService *SettingsService,
) *FundService {
	return &FundService{
		transactionService: transactionService,
		navService:         navService,
		settingsService:    settingsService,
	}
}

// Compute loads transactions, NAV history and fee settings and runs the
// ledger engine. Callers treat the shared result as read-only.
func (s *FundService) Compute() (ledger.Result, error) {
	v, err, _ := s.group.Do("compute", func() (any, error) {
		transactions, err := s.transactionService.GetAll()
		if err != nil {
			return ledger.Result{}, fmt.Errorf("failed to load transactions: %w", err)
		}

		navHistory, err := s.navService.GetHistory()
		if err != nil {
			return ledger.Result{}, fmt.Errorf("failed to load NAV history: %w", err)
		}

		fees, err := s.settingsService.GetFees()
		if err != nil {
			return ledger.Result{}, fmt.Errorf("failed to load fee settings: %w", err)
		}

		return ledger.Compute(transactions, navHistory, fees.WithdrawFee, fees.ProfitFee), nil
	})
	if err != nil {
		return ledger.Result{}, err
	}

	return v.(ledger.Result), nil
}

// Summaries returns the per-user presentation rows, optionally filtered by
// a case-insensitive substring of the user identifier.
func (s *FundService) Summaries(search string) ([]model.WalletSummary, error) {
	res, err := s.Compute()
	if err != nil {
		return nil, err
	}
	return ledger.Summaries(res, search), nil
}

// WalletHistory returns one user's wallet-growth series.
func (s *FundService) WalletHistory(user string) ([]model.WalletPoint, error) {
	res, err := s.Compute()
	if err != nil {
		return nil, err
	}
	return ledger.WalletHistory(res, user), nil
}

// NavPerShareSeries returns the end-of-day price series for charting.
func (s *FundService) NavPerShareSeries() ([]model.NavSharePoint, error) {
	res, err := s.Compute()
	if err != nil {
		return nil, err
	}
	return ledger.NavPerShareSeries(res), nil
}

// ShareLedger returns the derived ledger entries in execution order.
func (s *FundService) ShareLedger() ([]model.LedgerEntry, error) {
	res, err := s.Compute()
	if err != nil {
		return nil, err
	}
	return res.ShareLedger, nil
}
