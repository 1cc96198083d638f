package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// Resolver turns a bearer token into the user it was issued to, reading
// through the session cache before the user store.
type Resolver struct {
	tokens *TokenService
	users  model.UserStore
	cache  model.SessionCache
	logger *logger.Logger
}

func NewResolver(tokens *TokenService, users model.UserStore, cache model.SessionCache, logger *logger.Logger) *Resolver {
	return &Resolver{
		tokens: tokens,
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// Resolve authenticates token. Every failure to identify the caller is
// reported as model.ErrInvalidToken or model.ErrTokenExpired.
func (r *Resolver) Resolve(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, model.ErrMissingToken
	}

	email, err := r.tokens.Redeem(token, model.PurposeAccess)
	if err != nil {
		if errors.Is(err, model.ErrInvalidTokenPurpose) {
			return model.User{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
		}
		return model.User{}, err
	}

	snapshot, ok, err := r.cache.Get(ctx, email)
	if err != nil {
		r.logger.Warn("Session resolver: cache read failed, falling back to store",
			"email", email,
			"error", err.Error())
	}
	if ok {
		r.logger.Debug("Session resolver: cache hit", "email", email)
		return snapshot.User(), nil
	}

	user, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			r.logger.Info("Session resolver: token subject not found", "email", email)
			return model.User{}, fmt.Errorf("%w: unknown subject", model.ErrInvalidToken)
		}
		r.logger.Error("Session resolver: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	refreshSession(ctx, r.cache, r.logger, user)

	return user, nil
}

// refreshSession overwrites the cached snapshot of user. Failures are logged
// because the cache is never authoritative.
func refreshSession(ctx context.Context, cache model.SessionCache, log *logger.Logger, user model.User) {
	if err := cache.Put(ctx, user.Email, model.NewSessionSnapshot(user)); err != nil {
		log.Warn("Session cache: failed to store snapshot",
			"email", user.Email,
			"error", err.Error())
	}
}
