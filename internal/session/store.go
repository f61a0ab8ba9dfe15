package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"intake/internal/model"
)

const keyPrefix = "intake:session:"

// Record is the server-side conversation snapshot kept between turns
// when the caller supplies a session id instead of carrying state.
type Record struct {
	State   model.ChatState     `json:"state"`
	History []model.ChatMessage `json:"history,omitempty"`
}

// Store keeps session records in Redis with a sliding TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store over an existing Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Load fetches the record for a session id, or nil when the session is
// unknown or expired.
func (s *Store) Load(ctx context.Context, sessionID string) (*Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &rec, nil
}

// Save writes the record and refreshes the TTL.
func (s *Store) Save(ctx context.Context, sessionID string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
