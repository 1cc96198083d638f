package model

import (
	"context"
	"time"
)

// SessionTTL is the lifetime of a cached session snapshot.
const SessionTTL = 30 * time.Minute

// SessionCache is a read-through cache of user snapshots keyed by email.
// A miss is reported with ok == false and a nil error.
type SessionCache interface {
	Get(ctx context.Context, email string) (snapshot SessionSnapshot, ok bool, err error)
	Put(ctx context.Context, email string, snapshot SessionSnapshot) error
}

// SessionSnapshot is the cached, denormalized copy of a user.
// The password hash is never cached.
type SessionSnapshot struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	Role       Role      `json:"role"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSessionSnapshot builds a snapshot from a stored user.
func NewSessionSnapshot(u User) SessionSnapshot {
	return SessionSnapshot{
		ID:         u.ID,
		Email:      u.Email,
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		Role:       u.Role,
		AvatarURL:  u.AvatarURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// User converts the snapshot back into a partial user. Unknown roles
// degrade to RoleUser so a corrupted entry never grants admin access.
func (s SessionSnapshot) User() User {
	role, err := ParseRole(string(s.Role))
	if err != nil {
		role = RoleUser
	}
	return User{
		ID:         s.ID,
		Email:      s.Email,
		IsActive:   s.IsActive,
		IsVerified: s.IsVerified,
		Role:       role,
		AvatarURL:  s.AvatarURL,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
