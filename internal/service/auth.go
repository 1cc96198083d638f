package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

const avatarKeyPrefix = "avatars/"

// AccountMails renders the subject and body of account mails.
type AccountMails interface {
	Verification(token string) (subject, body string)
	PasswordReset(token string) (subject, body string)
}

type Auth struct {
	userStore model.UserStore
	cache     model.SessionCache
	hasher    model.PasswordHasher
	tokens    *TokenService
	mailer    model.Mailer
	mails     AccountMails
	media     model.MediaHost
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	cache model.SessionCache,
	hasher model.PasswordHasher,
	tokens *TokenService,
	mailer model.Mailer,
	mails AccountMails,
	media model.MediaHost,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		cache:     cache,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		mails:     mails,
		media:     media,
		logger:    logger,
	}
}

// Register stores an unverified user and mails a verification link.
// Mail delivery never affects the outcome.
func (a *Auth) Register(ctx context.Context, email, password string, isAdmin bool) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return model.User{}, fmt.Errorf("user %s: %w", email, model.ErrConflict)
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := model.RoleUser
	if isAdmin {
		role = model.RoleAdmin
	}

	// the store's unique constraint decides concurrent registrations
	user, err := a.userStore.Create(ctx, model.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			a.logger.Info("Auth service: user already exists",
				"email", email)
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokens.IssueVerification(email)
	if err != nil {
		a.logger.Error("Auth service: failed to issue verification token",
			"email", email,
			"error", err.Error())
		return user, nil
	}

	subject, body := a.mails.Verification(token)
	if err := a.mailer.Send(ctx, email, subject, body); err != nil {
		a.logger.Warn("Auth service: failed to queue verification mail",
			"email", email,
			"error", err.Error())
	}

	a.logger.Info("Auth service: user registered",
		"email", email,
		"user_id", user.ID,
		"role", string(user.Role))

	return user, nil
}

// Verify marks the token's subject as verified. Verifying twice succeeds.
func (a *Auth) Verify(ctx context.Context, token string) (model.User, error) {
	email, err := a.tokens.Redeem(token, model.PurposeEmailVerification)
	if err != nil {
		a.logger.Info("Auth service: rejected verification token",
			"error", err.Error())
		return model.User{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, fmt.Errorf("%w: unknown subject", model.ErrInvalidToken)
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.IsVerified = true
	user, err = a.userStore.Update(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to mark user verified",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	refreshSession(ctx, a.cache, a.logger, user)

	a.logger.Info("Auth service: email verified",
		"email", email)

	return user, nil
}

// Login checks credentials and issues an access token.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: starting login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: unknown email",
				"email", email)
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: invalid password",
			"email", email)
		return "", model.ErrInvalidCredentials
	}

	if !user.IsVerified {
		a.logger.Info("Auth service: login before verification",
			"email", email)
		return "", model.ErrEmailNotVerified
	}

	user = a.upgradeHash(ctx, user, password)

	token, err := a.tokens.IssueAccess(email)
	if err != nil {
		a.logger.Error("Auth service: failed to issue access token",
			"email", email,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	refreshSession(ctx, a.cache, a.logger, user)

	a.logger.Info("Auth service: user logged in",
		"email", email)

	return token, nil
}

type rehasher interface {
	NeedsRehash(digest string) bool
}

// upgradeHash re-hashes a digest produced by a non-default scheme.
// Failures are logged and the old digest is kept.
func (a *Auth) upgradeHash(ctx context.Context, user model.User, password string) model.User {
	r, ok := a.hasher.(rehasher)
	if !ok || !r.NeedsRehash(user.PasswordHash) {
		return user
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Warn("Auth service: failed to rehash password",
			"email", user.Email,
			"error", err.Error())
		return user
	}

	updated := user
	updated.PasswordHash = digest
	updated, err = a.userStore.Update(ctx, updated)
	if err != nil {
		a.logger.Warn("Auth service: failed to store rehashed password",
			"email", user.Email,
			"error", err.Error())
		return user
	}

	a.logger.Info("Auth service: password rehashed",
		"email", user.Email)
	return updated
}

// Me returns the public profile of the resolved user.
func (a *Auth) Me(user model.User) model.UserProfile {
	return user.Profile()
}

// RequestPasswordReset mails a short-lived reset link to a known user.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("user %s: %w", email, model.ErrNotFound)
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	token, err := a.tokens.IssueReset(email)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	subject, body := a.mails.PasswordReset(token)
	if err := a.mailer.Send(ctx, email, subject, body); err != nil {
		a.logger.Warn("Auth service: failed to queue reset mail",
			"email", email,
			"error", err.Error())
	}

	a.logger.Info("Auth service: password reset requested",
		"email", email)

	return nil
}

// ResetPassword redeems a reset token and replaces the password hash.
func (a *Auth) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := a.tokens.Redeem(token, model.PurposePasswordReset)
	if err != nil {
		a.logger.Info("Auth service: rejected reset token",
			"error", err.Error())
		return err
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("user %s: %w", email, model.ErrNotFound)
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user, err = a.userStore.Update(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to store new password",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to update user: %w", err)
	}

	refreshSession(ctx, a.cache, a.logger, user)

	a.logger.Info("Auth service: password reset",
		"email", email)

	return nil
}

// UpdateAvatar uploads a new avatar for an admin and removes the previous
// object on a best effort basis.
func (a *Auth) UpdateAvatar(ctx context.Context, current model.User, avatar model.Upload) (model.User, error) {
	if _, err := RequireRole(current, model.RoleAdmin); err != nil {
		return model.User{}, err
	}

	// the resolved identity may be a cached snapshot without the hash
	user, err := a.userStore.GetByID(ctx, current.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	key := avatarKeyPrefix + uuid.NewString()
	url, err := a.media.Upload(ctx, key, avatar.Reader, avatar.Size, avatar.ContentType)
	if err != nil {
		a.logger.Error("Auth service: failed to upload avatar",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("%w: %v", model.ErrUpstream, err)
	}

	previous := user.AvatarURL
	user.AvatarURL = &url
	user, err = a.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	refreshSession(ctx, a.cache, a.logger, user)

	if previous != nil {
		if oldKey, ok := a.media.KeyFromURL(*previous); ok {
			if err := a.media.Delete(ctx, oldKey); err != nil {
				a.logger.Warn("Auth service: failed to delete previous avatar",
					"user_id", user.ID,
					"error", err.Error())
			}
		}
	}

	a.logger.Info("Auth service: avatar updated",
		"user_id", user.ID)

	return user, nil
}
