package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/config"
	"github.com/poeconomics/fundbank-backend/internal/model"
)

// AuthService implements the binary admin/non-admin access gate. A
// successful login yields a fernet token carrying the admin username;
// every write-path request presents it and is verified against the
// configured TTL.
type AuthService struct {
	admin        config.AdminConfig
	key          *fernet.Key
	ttl          time.Duration
	auditService *AuditService
}

// NewAuthService creates a new AuthService. When cfg.Key is empty a random
// key is generated, which invalidates outstanding sessions on restart.
func NewAuthService(admin config.AdminConfig, session config.SessionConfig, auditService *AuditService) (*AuthService, error) {
	var key *fernet.Key
	if session.Key != "" {
		decoded, err := fernet.DecodeKey(session.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session key: %w", err)
		}
		key = decoded
	} else {
		key = &fernet.Key{}
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
	}

	return &AuthService{
		admin:        admin,
		key:          key,
		ttl:          session.TTL,
		auditService: auditService,
	}, nil
}

// Login checks the credentials and returns a session token. Failed
// attempts return apperrors.ErrInvalidCredentials and leave no audit
// entry; successful ones are audited as AdminLogin.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := fernet.EncryptAndSign([]byte(username), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := s.auditService.Record(ctx, model.ActionAdminLogin, "Logged in", username); err != nil {
		return "", err
	}

	return string(token), nil
}

// Verify checks a session token and returns the admin username it carries.
func (s *AuthService) Verify(token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrSessionInvalid
	}

	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return "", apperrors.ErrSessionInvalid
	}

	return string(payload), nil
}

// Logout audits the end of an admin session. Tokens are not revocable
// server-side; they simply age out of the TTL.
func (s *AuthService) Logout(ctx context.Context, admin string) error {
	return s.auditService.Record(ctx, model.ActionAdminLogout, "Logged out", admin)
}
