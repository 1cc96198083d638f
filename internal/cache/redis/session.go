package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/contacts-server/internal/model"
)

const keyPrefix = "user:"

var _ model.SessionCache = (*SessionCache)(nil)

// SessionCache stores user snapshots as JSON under "user:<email>" with a fixed TTL.
type SessionCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache. A non-positive ttl selects model.SessionTTL.
func NewSessionCache(client goredis.UniversalClient, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = model.SessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Key returns the cache key for email.
func Key(email string) string {
	return keyPrefix + email
}

// Get returns the cached snapshot for email. A missing or undecodable
// entry is reported as a miss.
func (c *SessionCache) Get(ctx context.Context, email string) (model.SessionSnapshot, bool, error) {
	data, err := c.client.Get(ctx, Key(email)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.SessionSnapshot{}, false, nil
		}
		return model.SessionSnapshot{}, false, fmt.Errorf("failed to get session: %w", err)
	}

	var snapshot model.SessionSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.SessionSnapshot{}, false, nil
	}
	if snapshot.Email == "" || snapshot.ID == 0 {
		return model.SessionSnapshot{}, false, nil
	}

	return snapshot, true, nil
}

// Put overwrites the snapshot for email and resets its TTL.
func (c *SessionCache) Put(ctx context.Context, email string, snapshot model.SessionSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := c.client.Set(ctx, Key(email), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to put session: %w", err)
	}

	return nil
}
