package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tudgoi/pika/internal/adapters/driven/storage/memory"
	"github.com/tudgoi/pika/internal/core/domain"
)

func newSchemaService() *SchemaService {
	return NewSchemaService(memory.NewSchemaStore())
}

// defineChain registers agent (abstract) <- person{name} for reuse.
func defineChain(t *testing.T, svc *SchemaService) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, svc.Define(ctx, domain.Schema{
		Name:     "agent",
		Abstract: true,
		Properties: []domain.SchemaProperty{
			{Name: "identifier", Type: "string"},
		},
	}))
	require.NoError(t, svc.Define(ctx, domain.Schema{
		Name:    "person",
		Extends: "agent",
		Properties: []domain.SchemaProperty{
			{Name: "name", Type: "string"},
		},
	}))
}

func TestSchemaService_Define(t *testing.T) {
	svc := newSchemaService()
	ctx := context.Background()

	err := svc.Define(ctx, domain.Schema{Name: "person"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "person")
	require.NoError(t, err)
	assert.Equal(t, "person", got.Name)
	assert.False(t, got.Abstract)
}

func TestSchemaService_Define_Duplicate(t *testing.T) {
	svc := newSchemaService()
	ctx := context.Background()

	require.NoError(t, svc.Define(ctx, domain.Schema{Name: "person"}))
	err := svc.Define(ctx, domain.Schema{Name: "person"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSchema)
}

func TestSchemaService_Define_UnknownParent(t *testing.T) {
	svc := newSchemaService()

	err := svc.Define(context.Background(), domain.Schema{Name: "person", Extends: "agent"})
	assert.ErrorIs(t, err, domain.ErrUnknownParent)
}

func TestSchemaService_Define_SelfExtension(t *testing.T) {
	svc := newSchemaService()

	err := svc.Define(context.Background(), domain.Schema{Name: "person", Extends: "person"})
	assert.ErrorIs(t, err, domain.ErrCyclicInheritance)

	// Nothing was persisted for the failed definition.
	_, err = svc.Get(context.Background(), "person")
	assert.ErrorIs(t, err, domain.ErrUnknownSchema)
}

func TestSchemaService_Define_DuplicateProperty(t *testing.T) {
	svc := newSchemaService()

	err := svc.Define(context.Background(), domain.Schema{
		Name: "person",
		Properties: []domain.SchemaProperty{
			{Name: "name", Type: "string"},
			{Name: "name", Type: "number"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSchemaService_Resolve_Inheritance(t *testing.T) {
	svc := newSchemaService()
	defineChain(t, svc)

	resolved, err := svc.Resolve(context.Background(), "person")
	require.NoError(t, err)

	assert.Equal(t, "person", resolved.Name)
	assert.False(t, resolved.Abstract)
	require.Len(t, resolved.Properties, 2)

	name, ok := resolved.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "person", name.DeclaredBy)

	identifier, ok := resolved.Lookup("identifier")
	require.True(t, ok)
	assert.Equal(t, "agent", identifier.DeclaredBy, "inherited property keeps its declaring schema")
}

func TestSchemaService_Resolve_Shadowing(t *testing.T) {
	svc := newSchemaService()
	ctx := context.Background()
	require.NoError(t, svc.Define(ctx, domain.Schema{
		Name:       "agent",
		Properties: []domain.SchemaProperty{{Name: "name", Type: "name"}},
	}))
	require.NoError(t, svc.Define(ctx, domain.Schema{
		Name:       "person",
		Extends:    "agent",
		Properties: []domain.SchemaProperty{{Name: "name", Type: "string"}},
	}))

	resolved, err := svc.Resolve(ctx, "person")
	require.NoError(t, err)

	// The redeclaration at the more specific level wins.
	require.Len(t, resolved.Properties, 1)
	name, ok := resolved.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, "person", name.DeclaredBy)
	assert.Equal(t, "string", name.Type)
}

func TestSchemaService_Resolve_Unknown(t *testing.T) {
	svc := newSchemaService()

	_, err := svc.Resolve(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownSchema)
}

func TestSchemaService_IsInstantiable(t *testing.T) {
	svc := newSchemaService()
	defineChain(t, svc)
	ctx := context.Background()

	abstract, err := svc.IsInstantiable(ctx, "agent")
	require.NoError(t, err)
	assert.False(t, abstract)

	concrete, err := svc.IsInstantiable(ctx, "person")
	require.NoError(t, err)
	assert.True(t, concrete)

	_, err = svc.IsInstantiable(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUnknownSchema)
}
