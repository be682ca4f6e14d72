package memory

import (
	"context"
	"sync"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
)

// Ensure EntityStore implements the interface.
var _ driven.EntityStore = (*EntityStore)(nil)

// entityKey identifies an entity by (schema name, id).
type entityKey struct {
	schemaName string
	id         string
}

// EntityStore is an in-memory implementation of driven.EntityStore.
type EntityStore struct {
	mu sync.RWMutex
	// properties maps entity -> property schema -> property name -> value.
	// A present entity with an empty map is an entity with no properties.
	properties map[entityKey]map[string]map[string]string
}

// NewEntityStore creates a new in-memory entity store.
func NewEntityStore() *EntityStore {
	return &EntityStore{
		properties: make(map[entityKey]map[string]map[string]string),
	}
}

// CreateEntity records a new entity.
func (s *EntityStore) CreateEntity(_ context.Context, schemaName, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entityKey{schemaName, id}
	if _, ok := s.properties[key]; ok {
		return domain.ErrDuplicateEntity
	}
	s.properties[key] = make(map[string]map[string]string)
	return nil
}

// GetEntity retrieves an entity and all its property values.
func (s *EntityStore) GetEntity(_ context.Context, schemaName, id string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	props, ok := s.properties[entityKey{schemaName, id}]
	if !ok {
		return nil, domain.ErrNotFound
	}

	copied := make(map[string]map[string]string, len(props))
	for schema, values := range props {
		copied[schema] = make(map[string]string, len(values))
		for name, value := range values {
			copied[schema][name] = value
		}
	}
	return &domain.Entity{
		SchemaName: schemaName,
		ID:         id,
		Properties: copied,
	}, nil
}

// PutProperty upserts a single property value.
func (s *EntityStore) PutProperty(_ context.Context, prop domain.EntityProperty) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entityKey{prop.EntitySchemaName, prop.EntityID}
	props, ok := s.properties[key]
	if !ok {
		return domain.ErrNotFound
	}
	if props[prop.PropertySchemaName] == nil {
		props[prop.PropertySchemaName] = make(map[string]string)
	}
	props[prop.PropertySchemaName][prop.PropertyName] = prop.Value
	return nil
}

// DeleteEntity removes the entity and all its properties.
func (s *EntityStore) DeleteEntity(_ context.Context, schemaName, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entityKey{schemaName, id}
	if _, ok := s.properties[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.properties, key)
	return nil
}
