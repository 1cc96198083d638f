package service

import (
	"fmt"
	"time"

	"github.com/dtroode/contacts-server/internal/model"
)

// TokenTTLs holds the lifetime of each token purpose.
type TokenTTLs struct {
	Access       time.Duration
	Verification time.Duration
	Reset        time.Duration
}

// TokenService issues purpose-scoped tokens and redeems them only for the
// purpose they were issued for. It composes the TokenManager, which signs
// every purpose with the same key.
type TokenService struct {
	manager model.TokenManager
	ttls    TokenTTLs
}

func NewTokenService(manager model.TokenManager, ttls TokenTTLs) *TokenService {
	return &TokenService{manager: manager, ttls: ttls}
}

func (s *TokenService) IssueAccess(email string) (string, error) {
	return s.issue(email, model.PurposeAccess, s.ttls.Access)
}

func (s *TokenService) IssueVerification(email string) (string, error) {
	return s.issue(email, model.PurposeEmailVerification, s.ttls.Verification)
}

func (s *TokenService) IssueReset(email string) (string, error) {
	return s.issue(email, model.PurposePasswordReset, s.ttls.Reset)
}

func (s *TokenService) issue(email string, purpose model.TokenPurpose, ttl time.Duration) (string, error) {
	token, err := s.manager.Issue(email, purpose, ttl)
	if err != nil {
		return "", fmt.Errorf("issue %s token: %w", purpose, err)
	}
	return token, nil
}

// Redeem validates token and returns its subject. A valid token carrying a
// different purpose fails with model.ErrInvalidTokenPurpose.
func (s *TokenService) Redeem(token string, purpose model.TokenPurpose) (string, error) {
	claims, err := s.manager.Validate(token)
	if err != nil {
		return "", err
	}

	if claims.Purpose != purpose {
		return "", fmt.Errorf("%w: got %q, want %q", model.ErrInvalidTokenPurpose, claims.Purpose, purpose)
	}

	return claims.Subject, nil
}
