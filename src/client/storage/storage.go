package storage

import (
	"sync"
)

// Chaves persistidas pelo cliente.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// KeyValueStore é o substituto do localStorage do navegador: cada chave é
// independente e pode estar ausente. SetMany grava todas as chaves ou nenhuma.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	SetMany(values map[string]string) error
	Delete(keys ...string) error
}

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryStore) Set(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryStore) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, value := range values {
		m.values[key] = value
	}
	return nil
}

func (m *MemoryStore) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}
