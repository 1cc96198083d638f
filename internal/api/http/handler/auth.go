package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// AuthService defines account lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, email, password string, isAdmin bool) (model.User, error)
	Verify(ctx context.Context, token string) (model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(user model.User) model.UserProfile
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	UpdateAvatar(ctx context.Context, current model.User, avatar model.Upload) (model.User, error)
}

// Auth handles registration, verification, login and password reset.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" form:"email" query:"email"`
	Password string `json:"password" form:"password" query:"password"`
	IsAdmin  bool   `json:"is_admin" form:"is_admin" query:"is_admin"`
}

// Register creates an unverified account and mails a verification link.
func (h *Auth) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := model.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := required("password", req.Password); err != nil {
		return err
	}

	h.logger.Debug("Auth handler: processing registration request",
		"email", req.Email)

	user, err := h.authService.Register(c.UserContext(), req.Email, req.Password, req.IsAdmin)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return NewError(fiber.StatusConflict, "User already exists", err)
		}
		return err
	}

	h.logger.Info("Auth handler: user registered",
		"user_id", user.ID)

	return c.JSON(message("User registered successfully. Please check your email to verify your account."))
}

// Verify marks the address behind a verification token as verified.
func (h *Auth) Verify(c *fiber.Ctx) error {
	user, err := h.authService.Verify(c.UserContext(), c.Params("token"))
	if err != nil {
		if errors.Is(err, model.ErrInvalidToken) || errors.Is(err, model.ErrTokenExpired) ||
			errors.Is(err, model.ErrInvalidTokenPurpose) {
			return NewError(fiber.StatusBadRequest, "Invalid token", err)
		}
		return err
	}

	h.logger.Info("Auth handler: email verified",
		"user_id", user.ID)

	return c.JSON(message("Email verified successfully"))
}

// Token exchanges form encoded username and password for an access token.
func (h *Auth) Token(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if err := required("username", username); err != nil {
		return err
	}
	if err := required("password", password); err != nil {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), username, password)
	if err != nil {
		h.logger.Info("Auth handler: login rejected",
			"email", username,
			"error", err.Error())
		return err
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email" query:"email"`
}

// ForgotPassword mails a password reset link to a known user.
func (h *Auth) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := model.ValidateEmail(req.Email); err != nil {
		return err
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return NewError(fiber.StatusNotFound, "User not found", err)
		}
		return err
	}

	return c.JSON(message("Password reset email sent. Please check your email."))
}

type resetPasswordRequest struct {
	NewPassword string `json:"new_password" form:"new_password" query:"new_password"`
}

// ResetPassword replaces the password of the reset token's subject.
func (h *Auth) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := required("new_password", req.NewPassword); err != nil {
		return err
	}

	err := h.authService.ResetPassword(c.UserContext(), c.Params("token"), req.NewPassword)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrInvalidTokenPurpose):
		return NewError(fiber.StatusBadRequest, "Invalid token type", err)
	case errors.Is(err, model.ErrNotFound):
		return NewError(fiber.StatusNotFound, "User not found", err)
	case errors.Is(err, model.ErrInvalidToken), errors.Is(err, model.ErrTokenExpired):
		return NewError(fiber.StatusBadRequest, "Invalid or expired token", err)
	default:
		return err
	}

	return c.JSON(message("Password has been reset successfully"))
}
