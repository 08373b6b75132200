package handlers

import (
	"net/http"

	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/service"
)

// AuditHandler handles HTTP requests for the admin audit trail.
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new AuditHandler with the provided service dependency.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Events handles GET requests to retrieve the audit trail, newest first.
//
// Endpoint: GET /api/audit
// Response: 200 OK with array of AuditEvent
// Error: 500 Internal Server Error if retrieval fails
func (h *AuditHandler) Events(w http.ResponseWriter, _ *http.Request) {
	events, err := h.auditService.List()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve audit events", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, events)
}
