package driving

import (
	"context"

	"github.com/tudgoi/pika/internal/core/domain"
)

// EntityService creates and mutates entities, validating every property
// write against the entity's resolved schema.
type EntityService interface {
	// Create registers a new entity of the given schema. Fails with
	// domain.ErrUnknownSchema, domain.ErrAbstractSchema or
	// domain.ErrDuplicateEntity.
	Create(ctx context.Context, schemaName, id string) (*domain.Entity, error)

	// Get retrieves an entity with all its property values.
	Get(ctx context.Context, schemaName, id string) (*domain.Entity, error)

	// SetProperty upserts a property value. The property must be declared
	// on the entity's schema or an ancestor, and propertySchema must match
	// the declaring schema; otherwise domain.ErrUnknownProperty.
	SetProperty(ctx context.Context, schemaName, id, propertySchema, propertyName, value string) error

	// Delete removes the entity and all its properties atomically.
	Delete(ctx context.Context, schemaName, id string) error
}
