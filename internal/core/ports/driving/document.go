package driving

import (
	"context"

	"github.com/tudgoi/pika/internal/core/domain"
)

// DocumentService ingests crawled documents and serves full-text search
// over them.
type DocumentService interface {
	// Upsert stores the content retrieved for a source. Fails with
	// domain.ErrUnknownSource if the source is not registered. If the
	// source already has a document with an identical content fingerprint,
	// only the retrieved date and etag are refreshed; otherwise the
	// content, title, hash and retrieved date are replaced and the search
	// index entry is rewritten in the same transaction.
	Upsert(ctx context.Context, sourceID int64, content, title, etag string) (*domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// Delete removes a document and its search index entry atomically.
	Delete(ctx context.Context, id int64) error

	// Search runs a full-text query over document titles and content.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)

	// Reindex rebuilds the search index from the stored documents.
	Reindex(ctx context.Context) error
}
