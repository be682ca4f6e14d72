package driving

import (
	"context"

	"github.com/tudgoi/pika/internal/core/domain"
)

// SchemaService registers schemas and resolves their effective property sets.
type SchemaService interface {
	// Define registers a schema. Fails with domain.ErrDuplicateSchema if
	// the name is taken, domain.ErrUnknownParent if Extends names an
	// unregistered schema, and domain.ErrCyclicInheritance if the extend
	// link would close a cycle. On failure nothing is persisted.
	Define(ctx context.Context, schema domain.Schema) error

	// Get retrieves a schema definition by name.
	Get(ctx context.Context, name string) (*domain.Schema, error)

	// List returns all registered schemas.
	List(ctx context.Context) ([]domain.Schema, error)

	// Resolve walks the extension chain and returns the effective property
	// set: every property declared on the schema or an ancestor, with
	// redeclarations at a more specific level shadowing the ancestor's.
	// Fails with domain.ErrUnknownSchema if the schema is not registered.
	Resolve(ctx context.Context, name string) (*domain.ResolvedSchema, error)

	// IsInstantiable reports whether entities of this schema may be
	// created. Abstract schemas are template-only.
	IsInstantiable(ctx context.Context, name string) (bool, error)
}
