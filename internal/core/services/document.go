package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
	"github.com/tudgoi/pika/internal/core/ports/driving"
	"github.com/tudgoi/pika/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService ingests crawled content and serves full-text search.
//
// A source has at most one live document. Upsert fingerprints the content
// so an unchanged re-crawl refreshes metadata without rewriting the row or
// reindexing; the store keeps the search index in the same transaction as
// every row mutation.
type DocumentService struct {
	docStore    driven.DocumentStore
	sourceStore driven.SourceStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, sourceStore driven.SourceStore) *DocumentService {
	return &DocumentService{
		docStore:    docStore,
		sourceStore: sourceStore,
	}
}

// Upsert stores the content retrieved for a source.
func (s *DocumentService) Upsert(ctx context.Context, sourceID int64, content, title, etag string) (*domain.Document, error) {
	if _, err := s.sourceStore.Get(ctx, sourceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrUnknownSource, sourceID)
		}
		return nil, fmt.Errorf("checking source %d: %w", sourceID, err)
	}

	hash := domain.Fingerprint(content)
	now := time.Now().UTC()

	existing, err := s.docStore.GetBySource(ctx, sourceID)
	if errors.Is(err, domain.ErrNotFound) {
		doc := &domain.Document{
			SourceID:      sourceID,
			Hash:          hash,
			RetrievedDate: now,
			Etag:          etag,
			Title:         title,
			Content:       content,
		}
		inserted, insertErr := s.docStore.Insert(ctx, doc)
		if insertErr == nil {
			logger.Debug("indexed new document %d for source %d", inserted.ID, sourceID)
			return inserted, nil
		}
		if !errors.Is(insertErr, domain.ErrDuplicateDocument) {
			return nil, fmt.Errorf("inserting document for source %d: %w", sourceID, insertErr)
		}
		// A concurrent upsert inserted first; update that document instead.
		existing, err = s.docStore.GetBySource(ctx, sourceID)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up document for source %d: %w", sourceID, err)
	}

	if existing.Hash == hash {
		// Unchanged content: refresh crawl metadata, leave the index alone.
		if err := s.docStore.Refresh(ctx, existing.ID, now, etag); err != nil {
			return nil, fmt.Errorf("refreshing document %d: %w", existing.ID, err)
		}
		logger.Debug("document %d unchanged (hash %.12s), refreshed metadata", existing.ID, hash)
		existing.RetrievedDate = now
		existing.Etag = etag
		return existing, nil
	}

	updated := &domain.Document{
		ID:            existing.ID,
		SourceID:      sourceID,
		Hash:          hash,
		RetrievedDate: now,
		Etag:          etag,
		Title:         title,
		Content:       content,
	}
	if err := s.docStore.Replace(ctx, updated); err != nil {
		return nil, fmt.Errorf("replacing document %d: %w", existing.ID, err)
	}
	logger.Debug("document %d content changed, reindexed", existing.ID)
	return updated, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// Delete removes a document and its search index entry atomically.
func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	return s.docStore.Delete(ctx, id)
}

// Reindex rebuilds the search index from the stored documents. The index is
// a derived structure; this restores it after an out-of-band bulk load.
func (s *DocumentService) Reindex(ctx context.Context) error {
	if err := s.docStore.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}
	logger.Info("search index rebuilt")
	return nil
}

// Search runs a full-text query over document titles and content.
func (s *DocumentService) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	results, err := s.docStore.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	logger.Debug("search %q returned %d results", query, len(results))
	if logger.IsVerbose() {
		for _, result := range results {
			logger.Debug("hit %d score %.3f", result.DocumentID, result.Score)
		}
	}
	return results, nil
}
