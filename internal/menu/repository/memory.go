package repository

import (
	"context"
	"sync"

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Store used for local runs and unit tests.
// Enumeration order is insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*menu.MenuItem
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*menu.MenuItem)}
}

func (m *MemoryRepo) Add(_ context.Context, item menu.MenuItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uuid.NewString()
	m.store[item.ID] = &item
	m.order = append(m.order, item.ID)
	return item.ID, nil
}

func (m *MemoryRepo) List(_ context.Context) ([]menu.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]menu.MenuItem, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.store[id])
	}
	return out, nil
}

func (m *MemoryRepo) Update(_ context.Context, id string, p menu.Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.store[id]
	if !ok {
		return menu.ErrNotFound
	}
	p.Apply(it)
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return nil
	}
	delete(m.store, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepo) Ping(_ context.Context) error { return nil }
