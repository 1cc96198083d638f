package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// User handles endpoints acting on the authenticated user.
type User struct {
	authService    AuthService
	contextManager model.ContextManager
	maxAvatarSize  int64
	logger         *logger.Logger
}

// NewUser creates a new User handler. A maxAvatarSize of zero disables the
// per-file size check.
func NewUser(authService AuthService, contextManager model.ContextManager, maxAvatarSize int64, logger *logger.Logger) *User {
	return &User{
		authService:    authService,
		contextManager: contextManager,
		maxAvatarSize:  maxAvatarSize,
		logger:         logger,
	}
}

// Me returns the profile of the authenticated user.
func (h *User) Me(c *fiber.Ctx) error {
	user, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}
	return c.JSON(h.authService.Me(user))
}

// UpdateAvatar stores the multipart "file" as the caller's avatar.
func (h *User) UpdateAvatar(c *fiber.Ctx) error {
	user, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}

	header, err := c.FormFile("file")
	if err != nil {
		return NewError(fiber.StatusUnprocessableEntity, "file is required", err)
	}
	if h.maxAvatarSize > 0 && header.Size > h.maxAvatarSize {
		return NewError(fiber.StatusRequestEntityTooLarge, "File too large", nil)
	}

	file, err := header.Open()
	if err != nil {
		return NewError(fiber.StatusUnprocessableEntity, "unreadable file", err)
	}
	defer file.Close()

	contentType := header.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	updated, err := h.authService.UpdateAvatar(c.UserContext(), user, model.Upload{
		Reader:      file,
		Size:        header.Size,
		ContentType: contentType,
	})
	switch {
	case err == nil:
	case errors.Is(err, model.ErrForbidden):
		return NewError(fiber.StatusForbidden, "Only admin users can change their avatar", err)
	case errors.Is(err, model.ErrUpstream):
		return NewError(fiber.StatusInternalServerError, "Error uploading avatar: "+err.Error(), err)
	default:
		return err
	}

	var avatarURL string
	if updated.AvatarURL != nil {
		avatarURL = *updated.AvatarURL
	}

	h.logger.Info("User handler: avatar updated",
		"user_id", updated.ID)

	return c.JSON(fiber.Map{
		"message":    "Avatar updated successfully",
		"avatar_url": avatarURL,
	})
}
