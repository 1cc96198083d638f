package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// ContactService defines owner scoped contact operations.
type ContactService interface {
	Create(ctx context.Context, ownerID int64, in model.ContactInput) (model.Contact, error)
	List(ctx context.Context, ownerID int64) ([]model.Contact, error)
	Get(ctx context.Context, ownerID, id int64) (model.Contact, error)
	Update(ctx context.Context, ownerID, id int64, in model.ContactInput) (model.Contact, error)
	Delete(ctx context.Context, ownerID, id int64) (model.Contact, error)
}

// Contact handles the /contacts endpoints.
type Contact struct {
	contactService ContactService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewContact creates a new Contact handler.
func NewContact(contactService ContactService, contextManager model.ContextManager, logger *logger.Logger) *Contact {
	return &Contact{
		contactService: contactService,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Contact) Create(c *fiber.Ctx) error {
	owner, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}

	in, err := parseContactInput(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Create(c.UserContext(), owner.ID, in)
	if err != nil {
		return err
	}

	h.logger.Debug("Contact handler: contact created",
		"owner_id", owner.ID,
		"contact_id", contact.ID)

	return c.JSON(contact)
}

func (h *Contact) List(c *fiber.Ctx) error {
	owner, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}

	contacts, err := h.contactService.List(c.UserContext(), owner.ID)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}

	return c.JSON(contacts)
}

func (h *Contact) Get(c *fiber.Ctx) error {
	owner, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	contact, err := h.contactService.Get(c.UserContext(), owner.ID, id)
	if err != nil {
		return contactError(err)
	}

	return c.JSON(contact)
}

func (h *Contact) Update(c *fiber.Ctx) error {
	owner, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	in, err := parseContactInput(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Update(c.UserContext(), owner.ID, id, in)
	if err != nil {
		return contactError(err)
	}

	return c.JSON(contact)
}

// Delete removes the contact and echoes it back.
func (h *Contact) Delete(c *fiber.Ctx) error {
	owner, ok := h.contextManager.GetUserFromContext(c.UserContext())
	if !ok {
		return model.ErrMissingToken
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	contact, err := h.contactService.Delete(c.UserContext(), owner.ID, id)
	if err != nil {
		return contactError(err)
	}

	h.logger.Debug("Contact handler: contact deleted",
		"owner_id", owner.ID,
		"contact_id", contact.ID)

	return c.JSON(contact)
}

func parseContactInput(c *fiber.Ctx) (model.ContactInput, error) {
	var in model.ContactInput
	if err := c.BodyParser(&in); err != nil {
		return model.ContactInput{}, NewError(fiber.StatusUnprocessableEntity, "invalid request body", err)
	}
	if err := in.Validate(); err != nil {
		return model.ContactInput{}, err
	}
	return in, nil
}

func contactError(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return NewError(fiber.StatusNotFound, "Contact not found", err)
	}
	return err
}
