package iokv

import (
	"sync"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
)

// MockStore is an in-memory KV store for tests.
type MockStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailLoad and FailSave force errors for failure-path tests.
	FailLoad error
	FailSave error
}

var _ contract.KVStore = &MockStore{} // Compile-time check

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

// Load returns the stored value for key.
func (m *MockStore) Load(key string) ([]byte, bool, error) {
	if m.FailLoad != nil {
		return nil, false, m.FailLoad
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.data[key]
	if !found {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Save stores a copy of the value for key.
func (m *MockStore) Save(key string, value []byte) error {
	if m.FailSave != nil {
		return m.FailSave
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// GetStatus reports the in-memory contents.
func (m *MockStore) GetStatus() (schema.StoreStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var size int
	for _, v := range m.data {
		size += len(v)
	}
	return schema.StoreStatus{
		Backend:  schema.NoneBackend,
		Location: "memory",
		Keys:     len(m.data),
		SizeKB:   float64(size) / 1024.0,
	}, nil
}

// Clear removes all keys.
func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

// Close is a no-op for the mock.
func (m *MockStore) Close() error {
	return nil
}

// MockManager wraps a MockStore as a StoreManager.
type MockManager struct {
	Store contract.KVStore
}

var _ contract.StoreManager = &MockManager{} // Compile-time check

// GetStore returns the wrapped store.
func (m *MockManager) GetStore() contract.KVStore {
	return m.Store
}
