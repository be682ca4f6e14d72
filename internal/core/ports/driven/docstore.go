package driven

import (
	"context"
	"time"

	"github.com/tudgoi/pika/internal/core/domain"
)

// DocumentStore persists documents and keeps the full-text search index in
// lockstep with every document mutation.
//
// Insert, Replace and Delete update the index inside the same transaction as
// the document row: a reader never observes a document without its index
// entry or an index entry without its document. If the index half of a
// mutation fails, the whole mutation is rolled back and reported as
// domain.ErrIndexSync.
type DocumentStore interface {
	// Insert stores a new document and indexes it. The returned document
	// carries the store-assigned ID. A source has at most one document;
	// returns domain.ErrDuplicateDocument if one already exists, including
	// when a concurrent insert for the same source committed first.
	Insert(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// Replace overwrites an existing document's content, title, hash and
	// retrieved date, and reindexes it (index entry removed and re-added
	// under the same key). Returns domain.ErrNotFound if absent.
	Replace(ctx context.Context, doc *domain.Document) error

	// Refresh updates only the retrieved date and etag of a document whose
	// content is unchanged. The search index is not touched.
	Refresh(ctx context.Context, id int64, retrieved time.Time, etag string) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// GetBySource retrieves the live document for a source.
	// Returns domain.ErrNotFound if the source has no document.
	GetBySource(ctx context.Context, sourceID int64) (*domain.Document, error)

	// Delete removes a document and its index entry as one atomic unit.
	// Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// Rebuild discards the search index and reconstructs it from the
	// stored documents. The index is a cache; this restores it after
	// corruption or an out-of-band bulk load.
	Rebuild(ctx context.Context) error

	// Search runs a full-text query over indexed title and content.
	// Results are ordered descending by relevance, ties broken by document
	// ID ascending. The same query against the same index state yields the
	// same results.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}
