package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"intake/internal/model"
)

// MemoryRepository keeps leads in process memory. It backs local
// development when no database DSN is configured, and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]model.Lead
}

// NewMemoryRepository creates an empty in-memory lead store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leads: make(map[uuid.UUID]model.Lead)}
}

// CreateLead appends a lead record and returns its generated id.
func (r *MemoryRepository) CreateLead(_ context.Context, lead model.Lead) (uuid.UUID, error) {
	id := uuid.New()

	lead.ID = id
	lead.CreatedAt = time.Now().UTC()
	lead.State = lead.State.Clone()
	if lead.State.Phone != nil {
		lead.PhoneE164 = normalizePhoneE164(*lead.State.Phone)
	}

	r.mu.Lock()
	r.leads[id] = lead
	r.mu.Unlock()

	return id, nil
}

// GetLead retrieves a single lead by its id, or nil when absent.
func (r *MemoryRepository) GetLead(_ context.Context, id uuid.UUID) (*model.Lead, error) {
	r.mu.RLock()
	lead, ok := r.leads[id]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	lead.State = lead.State.Clone()
	return &lead, nil
}
