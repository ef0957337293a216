package favorites

import (
	"context"
	"sync"
)

// MemoryKV is a KV kept in process memory, used when no database is configured.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, scope string, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[scope][key]
	return value, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, scope string, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values[scope] == nil {
		m.values[scope] = make(map[string]string)
	}
	m.values[scope][key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, scope string, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values[scope], key)
	return nil
}
