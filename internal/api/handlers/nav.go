package handlers

import (
	"net/http"

	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/service"
	"github.com/poeconomics/fundbank-backend/internal/validation"
)

// NavHandler handles HTTP requests for the daily NAV series.
type NavHandler struct {
	navService *service.NavService
}

// NewNavHandler creates a new NavHandler with the provided service dependency.
func NewNavHandler(navService *service.NavService) *NavHandler {
	return &NavHandler{navService: navService}
}

// Points handles GET requests to retrieve the recorded NAV points
// ascending, for the NAV-over-time chart.
//
// Endpoint: GET /api/nav
// Response: 200 OK with array of NavPoint
// Error: 500 Internal Server Error if retrieval fails
func (h *NavHandler) Points(w http.ResponseWriter, _ *http.Request) {
	points, err := h.navService.GetPoints()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve NAV points", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// Range handles GET requests to retrieve one row per day from the fund
// start date through today, filling 0 for unset days. This is the dense
// series the admin bulk editor renders.
//
// Endpoint: GET /api/nav/range
// Response: 200 OK with array of NavPoint
// Error: 500 Internal Server Error if retrieval fails
func (h *NavHandler) Range(w http.ResponseWriter, _ *http.Request) {
	points, err := h.navService.GetRange()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve NAV range", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

// Save handles PUT requests to upsert a batch of NAV points. The batch is
// written atomically and audited as SaveNAV; any bad row rejects the whole
// request with no mutation.
//
// Endpoint: PUT /api/nav
// Request Body: SaveNavRequest (points: [{date, nav}])
// Response: 204 No Content
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the write fails
func (h *NavHandler) Save(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())

	req, err := parseJSON[request.SaveNavRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveNav(req.Points, h.navService.StartDate()); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	points := make([]model.NavPoint, 0, len(req.Points))
	for _, p := range req.Points {
		date, err := validation.ParseDate(p.Date)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		points = append(points, model.NavPoint{Date: date, NAV: p.NAV})
	}

	if err := h.navService.Save(r.Context(), points, admin); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save NAV points", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
