package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
	"github.com/tudgoi/pika/internal/core/ports/driving"
	"github.com/tudgoi/pika/internal/logger"
)

// Ensure SchemaService implements the interface.
var _ driving.SchemaService = (*SchemaService)(nil)

// SchemaService manages schema definitions and resolves inherited property
// sets. Extension forms a forest (each schema has at most one parent), so
// resolution is a bounded walk up the parent chain.
type SchemaService struct {
	schemaStore driven.SchemaStore
}

// NewSchemaService creates a new schema service.
func NewSchemaService(schemaStore driven.SchemaStore) *SchemaService {
	return &SchemaService{schemaStore: schemaStore}
}

// Define registers a schema. The duplicate, parent and cycle checks all run
// before anything is persisted, and the store saves the schema, its
// properties and its extend link atomically, so a failed definition leaves
// no partial state.
func (s *SchemaService) Define(ctx context.Context, schema domain.Schema) error {
	if schema.Name == "" {
		return fmt.Errorf("%w: schema name is empty", domain.ErrInvalidInput)
	}

	if _, err := s.schemaStore.Get(ctx, schema.Name); err == nil {
		return domain.ErrDuplicateSchema
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("checking schema %q: %w", schema.Name, err)
	}

	if schema.Extends != "" {
		if schema.Extends == schema.Name {
			return domain.ErrCyclicInheritance
		}
		if err := s.checkAncestry(ctx, schema.Name, schema.Extends); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(schema.Properties))
	for _, prop := range schema.Properties {
		if prop.Name == "" {
			return fmt.Errorf("%w: property name is empty", domain.ErrInvalidInput)
		}
		if seen[prop.Name] {
			return fmt.Errorf("%w: property %q declared twice", domain.ErrInvalidInput, prop.Name)
		}
		seen[prop.Name] = true
	}

	if err := s.schemaStore.Save(ctx, schema); err != nil {
		return fmt.Errorf("saving schema %q: %w", schema.Name, err)
	}

	logger.Debug("defined schema %q (abstract=%v, extends=%q, %d properties)",
		schema.Name, schema.Abstract, schema.Extends, len(schema.Properties))
	return nil
}

// checkAncestry verifies the parent exists and that walking up from it never
// reaches name, which would close a cycle.
func (s *SchemaService) checkAncestry(ctx context.Context, name, parent string) error {
	visited := map[string]bool{name: true}
	for current := parent; current != ""; {
		if visited[current] {
			return domain.ErrCyclicInheritance
		}
		visited[current] = true

		schema, err := s.schemaStore.Get(ctx, current)
		if errors.Is(err, domain.ErrNotFound) {
			if current == parent {
				return domain.ErrUnknownParent
			}
			return fmt.Errorf("%w: %s", domain.ErrUnknownSchema, current)
		}
		if err != nil {
			return fmt.Errorf("walking ancestry of %q: %w", name, err)
		}
		current = schema.Extends
	}
	return nil
}

// Get retrieves a schema definition by name.
func (s *SchemaService) Get(ctx context.Context, name string) (*domain.Schema, error) {
	schema, err := s.schemaStore.Get(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSchema, name)
	}
	return schema, err
}

// List returns all registered schemas.
func (s *SchemaService) List(ctx context.Context) ([]domain.Schema, error) {
	return s.schemaStore.List(ctx)
}

// Resolve returns the effective property set of a schema: everything
// declared on it or an ancestor. The chain is applied root first, so a
// property redeclared at a more specific level shadows the ancestor's
// declaration of the same name.
func (s *SchemaService) Resolve(ctx context.Context, name string) (*domain.ResolvedSchema, error) {
	chain, err := s.ancestry(ctx, name)
	if err != nil {
		return nil, err
	}

	resolved := &domain.ResolvedSchema{
		Name:       name,
		Abstract:   chain[0].Abstract,
		Properties: make(map[string]domain.ResolvedProperty),
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for _, prop := range chain[i].Properties {
			resolved.Properties[prop.Name] = domain.ResolvedProperty{
				DeclaredBy: chain[i].Name,
				Name:       prop.Name,
				Type:       prop.Type,
			}
		}
	}
	return resolved, nil
}

// IsInstantiable reports whether entities of this schema may be created.
func (s *SchemaService) IsInstantiable(ctx context.Context, name string) (bool, error) {
	schema, err := s.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return !schema.Abstract, nil
}

// ancestry returns the extension chain leaf first, starting at name.
// The acyclic invariant is enforced at definition time; the visited set
// guards against a store seeded out of band.
func (s *SchemaService) ancestry(ctx context.Context, name string) ([]domain.Schema, error) {
	var chain []domain.Schema
	visited := make(map[string]bool)
	for current := name; current != ""; {
		if visited[current] {
			return nil, domain.ErrCyclicInheritance
		}
		visited[current] = true

		schema, err := s.schemaStore.Get(ctx, current)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSchema, current)
		}
		if err != nil {
			return nil, fmt.Errorf("resolving schema %q: %w", name, err)
		}
		chain = append(chain, *schema)
		current = schema.Extends
	}
	return chain, nil
}
