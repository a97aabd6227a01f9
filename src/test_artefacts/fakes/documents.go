package fakes

import (
	"context"
	"encoding/json"
	"sync"

	"historyatlas/src/domain"
)

// DocumentStore implementa repositories.DocumentReader em memória.
type DocumentStore struct {
	mu        sync.Mutex
	documents map[domain.Collection][]json.RawMessage
	calls     map[domain.Collection]int
	Err       error

	// BeforeList roda antes de cada leitura, fora do lock.
	BeforeList func(collection domain.Collection)
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: map[domain.Collection][]json.RawMessage{},
		calls:     map[domain.Collection]int{},
	}
}

// Put substitui a coleção pelos valores serializados.
func (s *DocumentStore) Put(collection domain.Collection, values ...any) *DocumentStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	documents := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		body, err := json.Marshal(value)
		if err != nil {
			panic(err)
		}
		documents = append(documents, body)
	}
	s.documents[collection] = documents
	return s
}

func (s *DocumentStore) ListDocuments(_ context.Context, collection domain.Collection) ([]json.RawMessage, error) {
	if s.BeforeList != nil {
		s.BeforeList(collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[collection]++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.documents[collection], nil
}

func (s *DocumentStore) Calls(collection domain.Collection) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[collection]
}
