package driven

import (
	"context"

	"github.com/tudgoi/pika/internal/core/domain"
)

// EntityStore persists entities and their property values.
//
// Validation against the schema (property known, declaring schema correct,
// schema instantiable) is the service's job; the store only enforces the
// structural keys.
type EntityStore interface {
	// CreateEntity records a new entity. Returns domain.ErrDuplicateEntity
	// if (schemaName, id) already exists.
	CreateEntity(ctx context.Context, schemaName, id string) error

	// GetEntity retrieves an entity and all its property values.
	// Returns domain.ErrNotFound if the entity does not exist.
	GetEntity(ctx context.Context, schemaName, id string) (*domain.Entity, error)

	// PutProperty upserts a single property value. Last write wins.
	PutProperty(ctx context.Context, prop domain.EntityProperty) error

	// DeleteEntity removes the entity and all its properties as one atomic
	// unit. Returns domain.ErrNotFound if the entity does not exist.
	DeleteEntity(ctx context.Context, schemaName, id string) error
}
