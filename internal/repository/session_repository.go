package repository

import (
	"context"
	"sync"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	appErrors "github.com/samsoncodes33/Isaac-IT-frontend/pkg/errors"
)

type memoryKey struct {
	id   string
	slot string
}

// MemorySessionRepository keeps sessions in process memory for the lifetime of the process.
type MemorySessionRepository struct {
	mu    sync.RWMutex
	slots map[memoryKey]models.Session
}

// NewMemorySessionRepository constructs an empty in-memory store.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{slots: make(map[memoryKey]models.Session)}
}

// Save overwrites the slot with session.
func (r *MemorySessionRepository) Save(_ context.Context, slot string, session *models.Session) error {
	if session == nil || session.ID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[memoryKey{id: session.ID, slot: slot}] = *session
	return nil
}

// Load returns the slot contents or ErrSessionNotFound.
func (r *MemorySessionRepository) Load(_ context.Context, id, slot string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.slots[memoryKey{id: id, slot: slot}]
	if !ok {
		return nil, appErrors.ErrSessionNotFound
	}
	return &session, nil
}

// Clear removes the slot. Clearing an absent slot is not an error.
func (r *MemorySessionRepository) Clear(_ context.Context, id, slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, memoryKey{id: id, slot: slot})
	return nil
}

// Len reports how many slots are held.
func (r *MemorySessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}
