package driven

import (
	"context"

	"github.com/tudgoi/pika/internal/core/domain"
)

// SchemaStore persists schema definitions.
type SchemaStore interface {
	// Save stores a schema together with its declared properties and its
	// extend link as one atomic unit. Returns domain.ErrDuplicateSchema if
	// the name is already registered; no partial state is persisted.
	Save(ctx context.Context, schema domain.Schema) error

	// Get retrieves a schema by name, including its declared properties.
	// Returns domain.ErrNotFound if the schema is not registered.
	Get(ctx context.Context, name string) (*domain.Schema, error)

	// List returns all registered schemas.
	List(ctx context.Context) ([]domain.Schema, error)
}
