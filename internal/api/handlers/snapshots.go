package handlers

import (
	"net/http"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/service"
	"github.com/poeconomics/fundbank-backend/internal/validation"
)

// SnapshotHandler handles HTTP requests for materialized valuation
// snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// Snapshots handles GET requests to retrieve materialized valuations,
// optionally filtered by user and date range.
//
// Endpoint: GET /api/fund/snapshots?user=&start_date=&end_date=
// Response: 200 OK with array of ValuationSnapshot
// Error: 400 Bad Request on unparseable dates
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var startDate, endDate time.Time
	var err error
	if s := query.Get("start_date"); s != "" {
		if startDate, err = validation.ParseDate(s); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid start_date", err.Error())
			return
		}
	}
	if s := query.Get("end_date"); s != "" {
		if endDate, err = validation.ParseDate(s); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid end_date", err.Error())
			return
		}
	}
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		response.RespondError(w, http.StatusBadRequest, "invalid date range", "end_date precedes start_date")
		return
	}

	snapshots, err := h.snapshotService.Get(query.Get("user"), startDate, endDate)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve snapshots", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// Refresh handles POST requests to force a snapshot refresh for today,
// outside the scheduled run. Audited as RefreshSnapshots.
//
// Endpoint: POST /api/fund/snapshots/refresh
// Response: 200 OK with the number of rows written
// Error: 500 Internal Server Error if the refresh fails
func (h *SnapshotHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())

	today := time.Now().UTC().Truncate(24 * time.Hour)
	written, err := h.snapshotService.Refresh(r.Context(), today, admin)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh snapshots", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"written": written})
}
