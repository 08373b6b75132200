package handlers

import (
	"errors"
	"net/http"

	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/service"
	"github.com/poeconomics/fundbank-backend/internal/validation"
)

// SettingsHandler handles HTTP requests for the global fee settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// FeesResponse carries the fee rates both as fractions (what the engine
// consumes) and percentages (what admins edit).
type FeesResponse struct {
	WithdrawFee    float64 `json:"withdrawFee"`
	ProfitFee      float64 `json:"profitFee"`
	WithdrawFeePct float64 `json:"withdrawFeePct"`
	ProfitFeePct   float64 `json:"profitFeePct"`
}

func newFeesResponse(fees model.FeeSettings) FeesResponse {
	return FeesResponse{
		WithdrawFee:    fees.WithdrawFee,
		ProfitFee:      fees.ProfitFee,
		WithdrawFeePct: fees.WithdrawFee * 100,
		ProfitFeePct:   fees.ProfitFee * 100,
	}
}

// Fees handles GET requests to retrieve the current fee rates.
//
// Endpoint: GET /api/settings/fees
// Response: 200 OK with FeesResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) Fees(w http.ResponseWriter, _ *http.Request) {
	fees, err := h.settingsService.GetFees()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve fees", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newFeesResponse(fees))
}

// UpdateFees handles PUT requests to change the two global fee rates.
// Percentages must lie in [0, 20] and are rounded to two decimals; the
// change is audited as SetFees.
//
// Endpoint: PUT /api/settings/fees
// Request Body: UpdateFeesRequest (withdrawFeePct, profitFeePct)
// Response: 200 OK with FeesResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *SettingsHandler) UpdateFees(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())

	req, err := parseJSON[request.UpdateFeesRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFees(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fees, err := h.settingsService.SetFees(r.Context(), req.WithdrawFeePct, req.ProfitFeePct, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrFeeOutOfRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFeeOutOfRange.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update fees", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newFeesResponse(fees))
}
