package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/poeconomics/fundbank-backend/internal/api/response"
)

type contextKey string

// adminContextKey stores the verified admin username on the request context.
const adminContextKey contextKey = "admin"

// TokenVerifier checks a session token and returns the admin it belongs to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AdminSession gates the write path behind a valid admin session token
// presented as "Authorization: Bearer <token>". Requests without one are
// rejected with 401 before reaching the handler.
func AdminSession(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing session token")
				return
			}

			admin, err := verifier.Verify(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session token")
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the admin username stored by AdminSession, or
// an empty string when the request did not pass through the gate.
func AdminFromContext(ctx context.Context) string {
	admin, _ := ctx.Value(adminContextKey).(string)
	return admin
}
