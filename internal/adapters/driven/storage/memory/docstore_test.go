package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tudgoi/pika/internal/core/domain"
)

func newTestDocStore(t *testing.T) (*DocumentStore, *SourceStore) {
	t.Helper()
	sources := NewSourceStore()
	return NewDocumentStore(sources), sources
}

// insertDoc registers a fresh source and stores a document for it. A source
// carries at most one document, so every insert needs its own.
func insertDoc(t *testing.T, docs *DocumentStore, sources *SourceStore, title, content string) *domain.Document {
	t.Helper()
	ctx := context.Background()
	source, err := sources.Add(ctx, fmt.Sprintf("https://example.com/%d", sources.nextID+1))
	require.NoError(t, err)
	doc, err := docs.Insert(ctx, &domain.Document{
		SourceID:      source.ID,
		Hash:          domain.Fingerprint(content),
		RetrievedDate: time.Now().UTC(),
		Title:         title,
		Content:       content,
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentStore_Insert_SecondForSource(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	first := insertDoc(t, docs, sources, "", "the quick fox")

	_, err := docs.Insert(ctx, &domain.Document{
		SourceID:      first.SourceID,
		Hash:          domain.Fingerprint("the lazy dog"),
		RetrievedDate: time.Now().UTC(),
		Content:       "the lazy dog",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateDocument)

	// The original document is untouched and stays the source's only one.
	got, err := docs.GetBySource(ctx, first.SourceID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "the quick fox", got.Content)
}

func TestDocumentStore_SearchOrdering(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	// fox appears twice out of four terms in the first document.
	best := insertDoc(t, docs, sources, "", "fox fox jumps high")
	weak := insertDoc(t, docs, sources, "", "the quick brown fox jumps over the lazy dog")

	results, err := docs.Search(ctx, "fox", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, best.ID, results[0].DocumentID)
	assert.Equal(t, weak.ID, results[1].DocumentID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestDocumentStore_SearchTieBreak(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	// Identical content scores identically; ties order by document ID.
	first := insertDoc(t, docs, sources, "", "the quick fox")
	second := insertDoc(t, docs, sources, "", "the quick fox")

	for i := 0; i < 3; i++ {
		results, err := docs.Search(ctx, "fox", 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, first.ID, results[0].DocumentID)
		assert.Equal(t, second.ID, results[1].DocumentID)
	}
}

func TestDocumentStore_SearchAllTermsRequired(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	match := insertDoc(t, docs, sources, "", "the quick fox jumps")
	insertDoc(t, docs, sources, "", "the quick dog runs")

	results, err := docs.Search(ctx, "quick fox", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match.ID, results[0].DocumentID)
}

func TestDocumentStore_SearchMatchesTitle(t *testing.T) {
	docs, sources := newTestDocStore(t)

	doc := insertDoc(t, docs, sources, "Vulpine habits", "nothing relevant here")

	results, err := docs.Search(context.Background(), "vulpine", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, doc.ID, results[0].DocumentID)
}

func TestDocumentStore_SearchLimit(t *testing.T) {
	docs, sources := newTestDocStore(t)

	for i := 0; i < 5; i++ {
		insertDoc(t, docs, sources, "", "the quick fox")
	}

	results, err := docs.Search(context.Background(), "fox", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDocumentStore_ReplaceRewritesIndex(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	doc := insertDoc(t, docs, sources, "", "the quick fox")

	replaced := *doc
	replaced.Content = "the lazy dog"
	replaced.Hash = domain.Fingerprint(replaced.Content)
	require.NoError(t, docs.Replace(ctx, &replaced))

	results, err := docs.Search(ctx, "fox", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = docs.Search(ctx, "dog", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDocumentStore_RefreshLeavesIndexAlone(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	doc := insertDoc(t, docs, sources, "", "the quick fox")
	require.NoError(t, docs.Refresh(ctx, doc.ID, time.Now().UTC(), `"v2"`))

	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, `"v2"`, got.Etag)
	assert.Equal(t, "the quick fox", got.Content)

	results, err := docs.Search(ctx, "fox", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDocumentStore_Rebuild(t *testing.T) {
	docs, sources := newTestDocStore(t)
	ctx := context.Background()

	insertDoc(t, docs, sources, "", "the quick fox")
	insertDoc(t, docs, sources, "", "another fox story")

	require.NoError(t, docs.Rebuild(ctx))

	results, err := docs.Search(ctx, "fox", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestDocumentStore_Snippet(t *testing.T) {
	docs, sources := newTestDocStore(t)

	insertDoc(t, docs, sources, "", "one two three four five six seven eight nine ten "+
		"eleven twelve fox thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty")

	results, err := docs.Search(context.Background(), "fox", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Snippet, "<b>fox</b>")
	assert.Contains(t, results[0].Snippet, "...")
}
