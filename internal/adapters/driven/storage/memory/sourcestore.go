package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
)

// Ensure SourceStore implements the interface.
var _ driven.SourceStore = (*SourceStore)(nil)

// SourceStore is an in-memory implementation of driven.SourceStore.
type SourceStore struct {
	mu      sync.RWMutex
	nextID  int64
	sources map[int64]domain.Source

	// documents is set by NewDocumentStore so source deletion can honour
	// the in-use check and cascade.
	documents *DocumentStore
}

// NewSourceStore creates a new in-memory source store.
func NewSourceStore() *SourceStore {
	return &SourceStore{
		sources: make(map[int64]domain.Source),
	}
}

// Add registers a new source URL.
func (s *SourceStore) Add(_ context.Context, url string) (*domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, source := range s.sources {
		if source.URL == url {
			return nil, domain.ErrDuplicateSource
		}
	}
	s.nextID++
	source := domain.Source{ID: s.nextID, URL: url}
	s.sources[source.ID] = source
	return &source, nil
}

// Get retrieves a source by ID.
func (s *SourceStore) Get(_ context.Context, id int64) (*domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	source, ok := s.sources[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &source, nil
}

// List returns all registered sources ordered by ID.
func (s *SourceStore) List(_ context.Context) ([]domain.Source, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(domain.Source) bool { return true }), nil
}

// ListStale returns sources due for a crawl.
func (s *SourceStore) ListStale(_ context.Context, interval time.Duration) ([]domain.Source, error) {
	now := time.Now().UTC()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(source domain.Source) bool {
		return source.Stale(now, interval)
	}), nil
}

// SetCrawlDate records a completed crawl and clears the force flag.
func (s *SourceStore) SetCrawlDate(_ context.Context, id int64, crawled time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	source, ok := s.sources[id]
	if !ok {
		return domain.ErrNotFound
	}
	source.CrawlDate = crawled
	source.ForceCrawl = false
	s.sources[id] = source
	return nil
}

// SetForceCrawl flags or unflags the source for re-crawl.
func (s *SourceStore) SetForceCrawl(_ context.Context, id int64, force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	source, ok := s.sources[id]
	if !ok {
		return domain.ErrNotFound
	}
	source.ForceCrawl = force
	s.sources[id] = source
	return nil
}

// Delete removes a source, refusing while documents reference it unless
// cascade is set.
func (s *SourceStore) Delete(ctx context.Context, id int64, cascade bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sources[id]; !ok {
		return domain.ErrNotFound
	}

	if s.documents != nil {
		if cascade {
			s.documents.deleteBySource(id)
		} else if s.documents.hasSource(id) {
			return domain.ErrSourceInUse
		}
	}

	delete(s.sources, id)
	return nil
}

// collect returns sources matching the filter, ordered by ID.
// Caller holds the lock.
func (s *SourceStore) collect(match func(domain.Source) bool) []domain.Source {
	var sources []domain.Source //nolint:prealloc // filtered size unknown
	for _, source := range s.sources {
		if match(source) {
			sources = append(sources, source)
		}
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].ID < sources[j].ID
	})
	return sources
}
