package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tudgoi/pika/internal/core/domain"
)

func writeSchemaFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoadSchemaDir(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "agent.toml", `abstract = true

[properties.identifier]
type = "string"
`)
	writeSchemaFile(t, dir, "person.toml", `extends = "agent"

[properties.name]
type = "string"

[properties.born]
type = "date"
`)
	// Non-toml entries must be ignored.
	writeSchemaFile(t, dir, "notes.txt", "not a schema")

	schemas, err := LoadSchemaDir(dir)
	require.NoError(t, err)
	require.Len(t, schemas, 2)

	agent := schemas[0]
	assert.Equal(t, "agent", agent.Name)
	assert.True(t, agent.Abstract)
	assert.Empty(t, agent.Extends)
	assert.Equal(t, []domain.SchemaProperty{{Name: "identifier", Type: "string"}}, agent.Properties)

	person := schemas[1]
	assert.Equal(t, "person", person.Name)
	assert.False(t, person.Abstract)
	assert.Equal(t, "agent", person.Extends)
	// Properties come out sorted by name regardless of file order.
	assert.Equal(t, []domain.SchemaProperty{
		{Name: "born", Type: "date"},
		{Name: "name", Type: "string"},
	}, person.Properties)
}

func TestLoadSchemaDir_Empty(t *testing.T) {
	schemas, err := LoadSchemaDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, schemas)
}

func TestLoadSchemaDir_MissingDir(t *testing.T) {
	_, err := LoadSchemaDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadSchemaDir_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "broken.toml", "extends = [not toml")

	_, err := LoadSchemaDir(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.toml")
}
