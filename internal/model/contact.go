package model

import (
	"context"
	"time"
)

// ContactStore defines owner-scoped persistence operations for contacts.
type ContactStore interface {
	Create(ctx context.Context, contact Contact) (Contact, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Contact, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (Contact, error)
	Update(ctx context.Context, contact Contact) (Contact, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// Contact represents an address book entry owned by a single user.
type Contact struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Birthday       string    `json:"birthday"`
	AdditionalInfo *string   `json:"additional_info"`
	OwnerID        int64     `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContactInput carries client supplied contact fields.
type ContactInput struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Birthday       string  `json:"birthday"`
	AdditionalInfo *string `json:"additional_info"`
}

// Apply copies the input fields onto c.
func (in ContactInput) Apply(c Contact) Contact {
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Phone = in.Phone
	c.Birthday = in.Birthday
	c.AdditionalInfo = in.AdditionalInfo
	return c
}
