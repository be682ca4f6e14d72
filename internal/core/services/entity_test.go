package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tudgoi/pika/internal/adapters/driven/storage/memory"
	"github.com/tudgoi/pika/internal/core/domain"
)

func newEntityService(t *testing.T) *EntityService {
	t.Helper()
	schemas := newSchemaService()
	defineChain(t, schemas)
	return NewEntityService(memory.NewEntityStore(), schemas)
}

func TestEntityService_Create(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()

	entity, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)
	assert.Equal(t, "person", entity.SchemaName)
	assert.Equal(t, "p1", entity.ID)
	assert.Empty(t, entity.Properties)
}

func TestEntityService_Create_UnknownSchema(t *testing.T) {
	svc := newEntityService(t)

	_, err := svc.Create(context.Background(), "ghost", "g1")
	assert.ErrorIs(t, err, domain.ErrUnknownSchema)
}

func TestEntityService_Create_AbstractSchema(t *testing.T) {
	svc := newEntityService(t)

	_, err := svc.Create(context.Background(), "agent", "a1")
	assert.ErrorIs(t, err, domain.ErrAbstractSchema)
}

func TestEntityService_Create_Duplicate(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "person", "p1")
	assert.ErrorIs(t, err, domain.ErrDuplicateEntity)
}

func TestEntityService_SetProperty(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)

	require.NoError(t, svc.SetProperty(ctx, "person", "p1", "person", "name", "Ada"))

	entity, err := svc.Get(ctx, "person", "p1")
	require.NoError(t, err)
	value, ok := entity.Value("person", "name")
	require.True(t, ok)
	assert.Equal(t, "Ada", value)
}

func TestEntityService_SetProperty_Inherited(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)

	// identifier is declared by the abstract parent.
	require.NoError(t, svc.SetProperty(ctx, "person", "p1", "agent", "identifier", "ada-01"))

	entity, err := svc.Get(ctx, "person", "p1")
	require.NoError(t, err)
	value, ok := entity.Value("agent", "identifier")
	require.True(t, ok)
	assert.Equal(t, "ada-01", value)
}

func TestEntityService_SetProperty_Unknown(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)

	err = svc.SetProperty(ctx, "person", "p1", "person", "email", "ada@example.com")
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)
}

func TestEntityService_SetProperty_WrongDeclaringSchema(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)

	// name is declared by person, not agent.
	err = svc.SetProperty(ctx, "person", "p1", "agent", "name", "Ada")
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)
}

func TestEntityService_SetProperty_Overwrites(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)

	require.NoError(t, svc.SetProperty(ctx, "person", "p1", "person", "name", "Ada"))
	require.NoError(t, svc.SetProperty(ctx, "person", "p1", "person", "name", "Grace"))

	entity, err := svc.Get(ctx, "person", "p1")
	require.NoError(t, err)
	value, _ := entity.Value("person", "name")
	assert.Equal(t, "Grace", value)
}

func TestEntityService_SetProperty_MissingEntity(t *testing.T) {
	svc := newEntityService(t)

	err := svc.SetProperty(context.Background(), "person", "nobody", "person", "name", "Ada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntityService_Delete(t *testing.T) {
	svc := newEntityService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)
	require.NoError(t, svc.SetProperty(ctx, "person", "p1", "person", "name", "Ada"))

	require.NoError(t, svc.Delete(ctx, "person", "p1"))

	_, err = svc.Get(ctx, "person", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The id is reusable and carries no properties from the old entity.
	entity, err := svc.Create(ctx, "person", "p1")
	require.NoError(t, err)
	assert.Empty(t, entity.Properties)
}
