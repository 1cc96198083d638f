// Package memory provides process-local stores used for development and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dtroode/contacts-server/internal/model"
)

var (
	_ model.UserStore    = (*Store)(nil)
	_ model.ContactStore = (*ContactStore)(nil)
)

// Store keeps users and contacts in maps guarded by a single mutex.
type Store struct {
	mu            sync.Mutex
	now           func() time.Time
	users         map[int64]model.User
	emails        map[string]int64
	contacts      map[int64]model.Contact
	nextUserID    int64
	nextContactID int64
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		users:    make(map[int64]model.User),
		emails:   make(map[string]int64),
		contacts: make(map[int64]model.Contact),
	}
}

// Contacts returns a ContactStore view sharing this store's state.
func (s *Store) Contacts() *ContactStore {
	return &ContactStore{s: s}
}

func (s *Store) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *Store) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[user.Email]; ok {
		return model.User{}, fmt.Errorf("user %s: %w", user.Email, model.ErrConflict)
	}

	s.nextUserID++
	now := s.now().UTC()
	user.ID = s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	s.users[user.ID] = user
	s.emails[user.Email] = user.ID
	return user, nil
}

func (s *Store) Update(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.users[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if prev.Email != user.Email {
		if _, taken := s.emails[user.Email]; taken {
			return model.User{}, fmt.Errorf("user %s: %w", user.Email, model.ErrConflict)
		}
		delete(s.emails, prev.Email)
		s.emails[user.Email] = user.ID
	}

	user.CreatedAt = prev.CreatedAt
	user.UpdatedAt = s.now().UTC()
	s.users[user.ID] = user
	return user, nil
}

// ContactStore is the contact half of Store.
type ContactStore struct {
	s *Store
}

func (c *ContactStore) Create(_ context.Context, contact model.Contact) (model.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.users[contact.OwnerID]; !ok {
		return model.Contact{}, fmt.Errorf("owner %d: %w", contact.OwnerID, model.ErrNotFound)
	}

	c.s.nextContactID++
	now := c.s.now().UTC()
	contact.ID = c.s.nextContactID
	contact.CreatedAt = now
	contact.UpdatedAt = now

	c.s.contacts[contact.ID] = contact
	return contact, nil
}

func (c *ContactStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := make([]model.Contact, 0)
	for _, contact := range c.s.contacts {
		if contact.OwnerID == ownerID {
			out = append(out, contact)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *ContactStore) GetByIDAndOwner(_ context.Context, id, ownerID int64) (model.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	contact, ok := c.s.contacts[id]
	if !ok || contact.OwnerID != ownerID {
		return model.Contact{}, model.ErrNotFound
	}
	return contact, nil
}

func (c *ContactStore) Update(_ context.Context, contact model.Contact) (model.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	prev, ok := c.s.contacts[contact.ID]
	if !ok || prev.OwnerID != contact.OwnerID {
		return model.Contact{}, model.ErrNotFound
	}

	contact.CreatedAt = prev.CreatedAt
	contact.UpdatedAt = c.s.now().UTC()
	c.s.contacts[contact.ID] = contact
	return contact, nil
}

func (c *ContactStore) Delete(_ context.Context, id, ownerID int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	contact, ok := c.s.contacts[id]
	if !ok || contact.OwnerID != ownerID {
		return model.ErrNotFound
	}
	delete(c.s.contacts, id)
	return nil
}
