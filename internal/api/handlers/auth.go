package handlers

import (
	"errors"
	"net/http"

	"github.com/poeconomics/fundbank-backend/internal/api/middleware"
	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/api/response"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/service"
	"github.com/poeconomics/fundbank-backend/internal/validation"
)

// AuthHandler handles the admin login/logout endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginResponse carries the session token an admin presents on the write path.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST requests to open an admin session.
// Successful logins are audited; failed attempts are rejected without one.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 401 Unauthorized on wrong credentials
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{Token: token})
}

// Logout handles POST requests to close the admin session.
// Requires a valid session; the logout itself is audited.
//
// Endpoint: POST /api/auth/logout
// Response: 204 No Content
// Error: 500 Internal Server Error if the audit write fails
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	admin := middleware.AdminFromContext(r.Context())

	if err := h.authService.Logout(r.Context(), admin); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to log out", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
