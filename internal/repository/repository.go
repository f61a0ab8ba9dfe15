package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"intake/internal/model"
)

// LeadStore is the append-only lead record store. Persistence failures
// are non-fatal to a turn; the orchestrator logs and continues.
type LeadStore interface {
	// CreateLead appends a lead under a freshly generated id and
	// returns that id. There is no idempotency key: repeated
	// qualifying turns of one session append one record each.
	CreateLead(ctx context.Context, lead model.Lead) (uuid.UUID, error)

	// GetLead fetches a previously appended lead, or nil when absent.
	GetLead(ctx context.Context, id uuid.UUID) (*model.Lead, error)
}

const defaultPhoneRegion = "US"

// normalizePhoneE164 formats a captured phone number to E.164 for the
// persisted record. The raw captured text on the state is left alone.
// Returns "" when the number cannot be parsed or is invalid.
func normalizePhoneE164(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	number, err := phonenumbers.Parse(trimmed, defaultPhoneRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
