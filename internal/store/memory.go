package store

import (
	"context"
	"sync"
)

// MemoryStore keeps pages in process memory. Pages are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: make(map[string]string)}
}

func (m *MemoryStore) Put(ctx context.Context, ideaID, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ideaID == "" {
		return ErrEmptyIdeaID
	}

	m.mu.Lock()
	m.pages[ideaID] = html
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, ideaID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	html, ok := m.pages[ideaID]
	m.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	return html, nil
}

func (m *MemoryStore) Delete(ctx context.Context, ideaID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.pages, ideaID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemoryStore) Close() error { return nil }
