package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetSaveLoad(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.Set(KeySchemaDir, "/etc/pika/schemas")
	store.Set(KeyCrawlIntervalHours, 6)
	require.NoError(t, store.Save())

	// A fresh store picks the values up from disk.
	store, err = NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "/etc/pika/schemas", store.GetString(KeySchemaDir))
	assert.Equal(t, 6, store.GetInt(KeyCrawlIntervalHours))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))

	// Wrong types degrade to zero values rather than panicking.
	store.Set("number", "ten")
	assert.Zero(t, store.GetInt("number"))
	store.Set("text", 7)
	assert.Empty(t, store.GetString("text"))
}
