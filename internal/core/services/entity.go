package services

import (
	"context"
	"fmt"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
	"github.com/tudgoi/pika/internal/core/ports/driving"
	"github.com/tudgoi/pika/internal/logger"
)

// Ensure EntityService implements the interface.
var _ driving.EntityService = (*EntityService)(nil)

// EntityService stores entities and validates every property write against
// the entity's resolved schema. The store holds values as generic
// (schema, name, value) rows; the resolved schema descriptor is what makes
// those rows typed.
type EntityService struct {
	entityStore driven.EntityStore
	schemas     driving.SchemaService
}

// NewEntityService creates a new entity service.
func NewEntityService(entityStore driven.EntityStore, schemas driving.SchemaService) *EntityService {
	return &EntityService{
		entityStore: entityStore,
		schemas:     schemas,
	}
}

// Create registers a new entity of the given schema.
func (s *EntityService) Create(ctx context.Context, schemaName, id string) (*domain.Entity, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: entity id is empty", domain.ErrInvalidInput)
	}

	instantiable, err := s.schemas.IsInstantiable(ctx, schemaName)
	if err != nil {
		return nil, err
	}
	if !instantiable {
		return nil, fmt.Errorf("%w: %s", domain.ErrAbstractSchema, schemaName)
	}

	if err := s.entityStore.CreateEntity(ctx, schemaName, id); err != nil {
		return nil, err
	}

	logger.Debug("created entity %s/%s", schemaName, id)
	return &domain.Entity{
		SchemaName: schemaName,
		ID:         id,
		Properties: make(map[string]map[string]string),
	}, nil
}

// Get retrieves an entity with all its property values.
func (s *EntityService) Get(ctx context.Context, schemaName, id string) (*domain.Entity, error) {
	return s.entityStore.GetEntity(ctx, schemaName, id)
}

// SetProperty upserts a property value. The property must appear in the
// entity's resolved schema and propertySchema must name the schema that
// declared it; a shadowed ancestor declaration is not addressable.
func (s *EntityService) SetProperty(ctx context.Context, schemaName, id, propertySchema, propertyName, value string) error {
	if _, err := s.entityStore.GetEntity(ctx, schemaName, id); err != nil {
		return err
	}

	resolved, err := s.schemas.Resolve(ctx, schemaName)
	if err != nil {
		return err
	}

	prop, ok := resolved.Lookup(propertyName)
	if !ok {
		return fmt.Errorf("%w: %s has no property %q", domain.ErrUnknownProperty, schemaName, propertyName)
	}
	if prop.DeclaredBy != propertySchema {
		return fmt.Errorf("%w: %q is declared by %s, not %s",
			domain.ErrUnknownProperty, propertyName, prop.DeclaredBy, propertySchema)
	}

	err = s.entityStore.PutProperty(ctx, domain.EntityProperty{
		EntitySchemaName:   schemaName,
		EntityID:           id,
		PropertySchemaName: propertySchema,
		PropertyName:       propertyName,
		Value:              value,
	})
	if err != nil {
		return fmt.Errorf("setting %s.%s on %s/%s: %w", propertySchema, propertyName, schemaName, id, err)
	}
	return nil
}

// Delete removes the entity and all its properties atomically.
func (s *EntityService) Delete(ctx context.Context, schemaName, id string) error {
	return s.entityStore.DeleteEntity(ctx, schemaName, id)
}
