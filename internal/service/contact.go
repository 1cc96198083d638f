package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/contacts-server/internal/logger"
	"github.com/dtroode/contacts-server/internal/model"
)

// Contacts implements owner-scoped contact operations. A contact owned by
// someone else is indistinguishable from a missing one.
type Contacts struct {
	store  model.ContactStore
	logger *logger.Logger
}

func NewContacts(store model.ContactStore, logger *logger.Logger) *Contacts {
	return &Contacts{
		store:  store,
		logger: logger,
	}
}

func (s *Contacts) Create(ctx context.Context, ownerID int64, in model.ContactInput) (model.Contact, error) {
	contact, err := s.store.Create(ctx, in.Apply(model.Contact{OwnerID: ownerID}))
	if err != nil {
		s.logger.Error("Contacts service: failed to create contact",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Debug("Contacts service: contact created",
		"owner_id", ownerID,
		"contact_id", contact.ID)

	return contact, nil
}

func (s *Contacts) List(ctx context.Context, ownerID int64) ([]model.Contact, error) {
	contacts, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

func (s *Contacts) Get(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	contact, err := s.store.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return model.Contact{}, wrapContactErr("get", id, err)
	}
	return contact, nil
}

func (s *Contacts) Update(ctx context.Context, ownerID, id int64, in model.ContactInput) (model.Contact, error) {
	contact, err := s.store.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return model.Contact{}, wrapContactErr("get", id, err)
	}

	contact, err = s.store.Update(ctx, in.Apply(contact))
	if err != nil {
		return model.Contact{}, wrapContactErr("update", id, err)
	}

	s.logger.Debug("Contacts service: contact updated",
		"owner_id", ownerID,
		"contact_id", id)

	return contact, nil
}

// Delete removes the contact and returns it as it was before deletion.
func (s *Contacts) Delete(ctx context.Context, ownerID, id int64) (model.Contact, error) {
	contact, err := s.store.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return model.Contact{}, wrapContactErr("get", id, err)
	}

	if err := s.store.Delete(ctx, id, ownerID); err != nil {
		return model.Contact{}, wrapContactErr("delete", id, err)
	}

	s.logger.Debug("Contacts service: contact deleted",
		"owner_id", ownerID,
		"contact_id", id)

	return contact, nil
}

func wrapContactErr(op string, id int64, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("contact %d: %w", id, model.ErrNotFound)
	}
	return fmt.Errorf("failed to %s contact: %w", op, err)
}
