package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/service"
)

// maxUploadBytes bounds uploaded record files; histories are small.
const maxUploadBytes = 10 << 20

// BackupHandler handles record-file export and restore endpoints.
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler with the provided service dependency.
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// Transactions handles GET requests to download the transaction history
// as a CSV record file.
//
// Endpoint: GET /api/backup/transactions
// Response: 200 OK with CSV attachment (columns Date, User, Type, Amount)
// Error: 500 Internal Server Error if the export fails
func (h *BackupHandler) Transactions(w http.ResponseWriter, _ *http.Request) {
	writeCSVHeaders(w, "transactions_backup.csv")
	if err := h.backupService.ExportTransactions(w); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to export transactions", err.Error())
	}
}

// Nav handles GET requests to download the recorded NAV points as a CSV
// record file.
//
// Endpoint: GET /api/backup/nav
// Response: 200 OK with CSV attachment (columns Date, NAV)
// Error: 500 Internal Server Error if the export fails
func (h *BackupHandler) Nav(w http.ResponseWriter, _ *http.Request) {
	writeCSVHeaders(w, "nav_backup.csv")
	if err := h.backupService.ExportNav(w); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to export NAV points", err.Error())
	}
}

// Audit handles GET requests to download the audit trail as a CSV record
// file, oldest first.
//
// Endpoint: GET /api/backup/audit
// Response: 200 OK with CSV attachment (columns Timestamp, Action, Details, Admin)
// Error: 500 Internal Server Error if the export fails
func (h *BackupHandler) Audit(w http.ResponseWriter, _ *http.Request) {
	writeCSVHeaders(w, "audit_log.csv")
	if err := h.backupService.ExportAudit(w); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to export audit log", err.Error())
	}
}

// RestoreTransactions handles POST requests to replace the transaction
// history wholesale from an uploaded CSV record file. The upload is
// audited as RestoreTx; a malformed file rejects with no mutation.
//
// Endpoint: POST /api/restore/transactions (multipart form, field "file")
// Response: 200 OK with the number of restored records
// Error: 400 Bad Request if the upload or its contents are malformed
// Error: 500 Internal Server Error if the restore fails
func (h *BackupHandler) RestoreTransactions(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "missing upload", err.Error())
		return
	}
	defer file.Close()

	restored, err := h.backupService.RestoreTransactions(r.Context(), file, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrMalformedRecordFile) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrMalformedRecordFile.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to restore transactions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"restored": restored})
}
