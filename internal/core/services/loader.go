package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driving"
	"github.com/tudgoi/pika/internal/logger"
)

// SchemaLoader registers parsed schema definitions in dependency order.
// Definitions typically come from a directory of TOML files; the loader
// only cares that parents are defined before their children.
type SchemaLoader struct {
	schemas driving.SchemaService
}

// NewSchemaLoader creates a new schema loader.
func NewSchemaLoader(schemas driving.SchemaService) *SchemaLoader {
	return &SchemaLoader{schemas: schemas}
}

// Register defines the given schemas, ordering parents before children.
// Already-registered schemas are skipped, so re-running over the same
// definitions (a watcher reload, a second init) is idempotent. Returns the
// number of newly defined schemas.
func (l *SchemaLoader) Register(ctx context.Context, defs []domain.Schema) (int, error) {
	ordered, err := orderByExtension(defs)
	if err != nil {
		return 0, err
	}

	defined := 0
	for _, schema := range ordered {
		err := l.schemas.Define(ctx, schema)
		if errors.Is(err, domain.ErrDuplicateSchema) {
			logger.Debug("schema %q already registered, skipping", schema.Name)
			continue
		}
		if err != nil {
			return defined, fmt.Errorf("defining schema %q: %w", schema.Name, err)
		}
		defined++
	}
	return defined, nil
}

// orderByExtension topologically sorts definitions so every parent precedes
// its children. Parents not present in defs are assumed to be registered
// already and left to Define's own checks. A cycle among the definitions is
// reported as domain.ErrCyclicInheritance.
func orderByExtension(defs []domain.Schema) ([]domain.Schema, error) {
	byName := make(map[string]domain.Schema, len(defs))
	for _, schema := range defs {
		byName[schema.Name] = schema
	}

	ordered := make([]domain.Schema, 0, len(defs))
	placed := make(map[string]bool, len(defs))
	walking := make(map[string]bool)

	var place func(name string) error
	place = func(name string) error {
		if placed[name] {
			return nil
		}
		if walking[name] {
			return domain.ErrCyclicInheritance
		}
		walking[name] = true
		schema := byName[name]
		if schema.Extends != "" {
			if _, local := byName[schema.Extends]; local {
				if err := place(schema.Extends); err != nil {
					return err
				}
			}
		}
		walking[name] = false
		placed[name] = true
		ordered = append(ordered, schema)
		return nil
	}

	for _, schema := range defs {
		if err := place(schema.Name); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
