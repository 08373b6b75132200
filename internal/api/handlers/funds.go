package handlers

import (
	"net/http"

	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/service"
)

// FundHandler handles HTTP requests for fund-level derived data: the
// end-of-day price series and the reconstructed share ledger.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// NavPerShare handles GET requests to retrieve the end-of-day
// NAV-per-share series. Dates whose NAV was never recorded carry null.
//
// Endpoint: GET /api/fund/nav-per-share
// Response: 200 OK with array of NavSharePoint
// Error: 500 Internal Server Error if the computation fails
func (h *FundHandler) NavPerShare(w http.ResponseWriter, _ *http.Request) {
	series, err := h.fundService.NavPerShareSeries()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute NAV per share", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, series)
}

// Ledger handles GET requests to retrieve the derived share ledger in
// execution order. Entries are recomputed from the full history on every
// call and are never persisted.
//
// Endpoint: GET /api/fund/ledger
// Response: 200 OK with array of LedgerEntry
// Error: 500 Internal Server Error if the computation fails
func (h *FundHandler) Ledger(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.fundService.ShareLedger()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute share ledger", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}
