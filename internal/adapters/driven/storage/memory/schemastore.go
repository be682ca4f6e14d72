package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
)

// Ensure SchemaStore implements the interface.
var _ driven.SchemaStore = (*SchemaStore)(nil)

// SchemaStore is an in-memory implementation of driven.SchemaStore.
type SchemaStore struct {
	mu      sync.RWMutex
	schemas map[string]domain.Schema
}

// NewSchemaStore creates a new in-memory schema store.
func NewSchemaStore() *SchemaStore {
	return &SchemaStore{
		schemas: make(map[string]domain.Schema),
	}
}

// Save stores a schema with its properties and extend link.
func (s *SchemaStore) Save(_ context.Context, schema domain.Schema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schemas[schema.Name]; ok {
		return domain.ErrDuplicateSchema
	}
	s.schemas[schema.Name] = schema
	return nil
}

// Get retrieves a schema by name.
func (s *SchemaStore) Get(_ context.Context, name string) (*domain.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, ok := s.schemas[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &schema, nil
}

// List returns all registered schemas sorted by name.
func (s *SchemaStore) List(_ context.Context) ([]domain.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schemas := make([]domain.Schema, 0, len(s.schemas))
	for _, schema := range s.schemas {
		schemas = append(schemas, schema)
	}
	sort.Slice(schemas, func(i, j int) bool {
		return schemas[i].Name < schemas[j].Name
	})
	return schemas, nil
}
