package draftcache

import (
	"sort"
	"sync"
	"time"
)

type memEntry struct {
	data      []byte
	expiresAt *time.Time
}

// MemoryStore is an in-process Store used by tests and --ephemeral runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     Clock
}

// NewMemoryStore creates an empty store. A nil clock uses time.Now.
func NewMemoryStore(now Clock) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{entries: make(map[string]memEntry), now: now}
}

func (m *MemoryStore) Set(key string, value any, opts Options) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{data: data, expiresAt: expiry(m.now(), opts)}
	return nil
}

func (m *MemoryStore) Get(key string, out any) (bool, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && e.expiresAt != nil && !m.now().Before(*e.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := decode(key, e.data, out); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Purge() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for k, e := range m.entries {
		if e.expiresAt != nil && !now.Before(*e.expiresAt) {
			delete(m.entries, k)
			n++
		}
	}
	return n, nil
}

// Keys lists every stored key, expired or not, in lexical order.
func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Close() error { return nil }
