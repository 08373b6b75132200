package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/service"
	"github.com/poeconomics/fundbank-backend/internal/validation"
)

// WalletHandler handles HTTP requests for wallet endpoints: the open
// per-user valuation rows and the admin-only bulk wallet deletion.
type WalletHandler struct {
	fundService        *service.FundService
	transactionService *service.TransactionService
}

// NewWalletHandler creates a new WalletHandler with the provided service dependencies.
func NewWalletHandler(fundService *service.FundService, transactionService *service.TransactionService) *WalletHandler {
	return &WalletHandler{
		fundService:        fundService,
		transactionService: transactionService,
	}
}

// Wallets handles GET requests to retrieve all wallets valued at the
// current NAV-per-share, sorted descending by value. An optional search
// query filters users by case-insensitive substring.
//
// Endpoint: GET /api/wallet?search=
// Response: 200 OK with array of WalletSummary
// Error: 500 Internal Server Error if the computation fails
func (h *WalletHandler) Wallets(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	summaries, err := h.fundService.Summaries(search)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute wallets", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// Users handles GET requests to list the users that currently have
// transactions, for the deletion picker.
//
// Endpoint: GET /api/wallet/users
// Response: 200 OK with array of usernames
// Error: 500 Internal Server Error if retrieval fails
func (h *WalletHandler) Users(w http.ResponseWriter, _ *http.Request) {
	users, err := h.transactionService.GetUsers()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve users", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, users)
}

// History handles GET requests to retrieve one user's wallet-growth
// series: the running share balance after each of their ledger entries,
// valued at that date's end-of-day price.
//
// Endpoint: GET /api/wallet/{user}/history
// Response: 200 OK with array of WalletPoint (empty for unknown users)
// Error: 500 Internal Server Error if the computation fails
func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	points, err := h.fundService.WalletHistory(user)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute wallet history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// DeleteWallet handles DELETE requests to remove every transaction for one
// user. The request body must repeat the exact username as confirmation;
// a mismatch rejects the request with no mutation and no audit entry.
//
// Endpoint: DELETE /api/wallet/{user}
// Request Body: DeleteWalletRequest (confirm)
// Response: 200 OK with the number of removed transactions
// Error: 400 Bad Request if the confirmation does not match
// Error: 404 Not Found if the user has no transactions
// Error: 500 Internal Server Error if deletion fails
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	admin := middleware.AdminFromContext(r.Context())

	req, err := parseJSON[request.DeleteWalletRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDeleteWallet(user, req.Confirm); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	removed, err := h.transactionService.DeleteWallet(r.Context(), user, req.Confirm, admin)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrConfirmationMismatch), errors.Is(err, apperrors.ErrEmptyUser):
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, apperrors.ErrUserNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), fmt.Sprintf("no transactions for user '%s'", user))
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete wallet", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}
