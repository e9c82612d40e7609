package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/halyard-auth/halyard-core/internal/core/domain"
)

// MockDocumentStore is an in-memory implementation of DocumentStore for
// testing. Optional error fields force the next matching call to fail.
type MockDocumentStore struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
	seq  int

	CreateErr error
	GetErr    error
	FetchErr  error
	PatchErr  error
	DeleteErr error

	// PatchCalls counts committed patches, for write-amplification checks.
	PatchCalls int
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		docs: make(map[string]domain.Document),
	}
}

func (m *MockDocumentStore) Create(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if m.CreateErr != nil {
		return domain.Document{}, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	doc.ID = fmt.Sprintf("%s.%d", doc.Type, m.seq)
	m.docs[doc.ID] = cloneDoc(doc)
	return doc, nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (domain.Document, error) {
	if m.GetErr != nil {
		return domain.Document{}, m.GetErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (m *MockDocumentStore) FetchOne(ctx context.Context, q domain.Query) (domain.Document, error) {
	if m.FetchErr != nil {
		return domain.Document{}, m.FetchErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.docs {
		if doc.Matches(q) {
			return cloneDoc(doc), nil
		}
	}
	return domain.Document{}, domain.ErrNotFound
}

func (m *MockDocumentStore) Patch(ctx context.Context, id string, fields map[string]any) (domain.Document, error) {
	if m.PatchErr != nil {
		return domain.Document{}, m.PatchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrNotFound
	}
	doc = cloneDoc(doc)
	for k, v := range fields {
		doc.Fields[k] = v
	}
	m.docs[id] = cloneDoc(doc)
	m.PatchCalls++
	return doc, nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, id)
	return nil
}

// Len returns the number of stored documents.
func (m *MockDocumentStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// Has reports whether a document with the given ID exists.
func (m *MockDocumentStore) Has(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[id]
	return ok
}

func cloneDoc(doc domain.Document) domain.Document {
	fields := make(map[string]any, len(doc.Fields))
	for k, v := range doc.Fields {
		fields[k] = v
	}
	doc.Fields = fields
	return doc
}
