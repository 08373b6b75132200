package validation

import (
	"strings"

	"github.com/poeconomics/fundbank-backend/internal/api/request"
)

// ValidateLogin validates an admin login request.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
