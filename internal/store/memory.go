// internal/store/memory.go
//
// In-memory registry of live session holders.
//
// Characteristics:
//   - Holders keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Delete closes the holder, so a discarded round never leaves its
//     countdown running.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/guesstheword/apps/go-server/internal/holder"
)

// ErrNotFound is returned for an unknown holder ID.
var ErrNotFound = errors.New("not found")

// Store defines the registry interface for session holders.
type Store interface {
	// Save adds or replaces a holder. A replaced holder is closed.
	Save(ctx context.Context, h holder.Holder) error

	// Get retrieves a holder by ID.
	Get(ctx context.Context, id string) (holder.Holder, error)

	// Delete removes and closes a holder.
	Delete(ctx context.Context, id string) error

	// Close closes and drops every holder.
	Close()
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex             // guards holders map
	holders map[string]holder.Holder // keyed by Holder.ID()
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{holders: make(map[string]holder.Holder)}
}

func (m *memory) Save(ctx context.Context, h holder.Holder) error {
	m.mu.Lock()
	old, ok := m.holders[h.ID()]
	m.holders[h.ID()] = h
	m.mu.Unlock()
	if ok && old != h {
		old.Close()
	}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (holder.Holder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.holders[id]; ok {
		return h, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	h, ok := m.holders[id]
	delete(m.holders, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	h.Close()
	return nil
}

func (m *memory) Close() {
	m.mu.Lock()
	all := m.holders
	m.holders = make(map[string]holder.Holder)
	m.mu.Unlock()
	for _, h := range all {
		h.Close()
	}
}
