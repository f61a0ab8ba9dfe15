package model

import (
	"time"

	"github.com/google/uuid"
)

// Lead is the append-only record persisted when an intake turn passes
// the capture gate. There is no idempotency key: a session that keeps
// satisfying the gate appends one record per qualifying turn; callers
// that need dedup must do it downstream.
type Lead struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	State     ChatState     `json:"state" db:"-"`
	Mode      Mode          `json:"mode" db:"mode"`
	Score     int           `json:"score" db:"score"`
	Reasons   []string      `json:"reasons" db:"-"`
	History   []ChatMessage `json:"history" db:"-"`
	PhoneE164 string        `json:"phone_e164,omitempty" db:"phone_e164"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
