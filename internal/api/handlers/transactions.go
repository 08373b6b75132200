package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/service"
	"github.com/poeconomics/fundbank-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
	startDate          time.Time
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
// startDate bounds how far back new transactions may be dated.
func NewTransactionHandler(transactionService *service.TransactionService, startDate time.Time) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		startDate:          startDate,
	}
}

// AllTransactions handles GET requests to retrieve the full transaction
// history in simulation order.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.transactionService.GetAll()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction handles POST requests to append a deposit or
// withdrawal to the history. The mutation is audited as AddTx.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (date, user, type, amount)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req, h.startDate); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := time.Parse(model.DateOnly, req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	// Usernames are stored trimmed, matching how wallets are keyed.
	transaction, err := h.transactionService.Create(r.Context(), date, strings.TrimSpace(req.User), req.Type, req.Amount, admin)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}
