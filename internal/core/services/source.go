package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
	"github.com/tudgoi/pika/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// DefaultCrawlInterval is how long a crawl result stays fresh before the
// source counts as stale again.
const DefaultCrawlInterval = 12 * time.Hour

// SourceService manages crawl sources. The crawler itself lives outside
// this module; it asks Stale what to fetch and reports back via MarkCrawled.
type SourceService struct {
	sourceStore   driven.SourceStore
	crawlInterval time.Duration
}

// NewSourceService creates a new source service. A non-positive interval
// falls back to DefaultCrawlInterval.
func NewSourceService(sourceStore driven.SourceStore, crawlInterval time.Duration) *SourceService {
	if crawlInterval <= 0 {
		crawlInterval = DefaultCrawlInterval
	}
	return &SourceService{
		sourceStore:   sourceStore,
		crawlInterval: crawlInterval,
	}
}

// Add registers a source URL.
func (s *SourceService) Add(ctx context.Context, rawURL string) (*domain.Source, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", domain.ErrInvalidInput, rawURL)
	}
	return s.sourceStore.Add(ctx, rawURL)
}

// Get retrieves a source by ID.
func (s *SourceService) Get(ctx context.Context, id int64) (*domain.Source, error) {
	return s.sourceStore.Get(ctx, id)
}

// List returns all registered sources.
func (s *SourceService) List(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.List(ctx)
}

// Stale returns sources due for a crawl under the configured interval.
func (s *SourceService) Stale(ctx context.Context) ([]domain.Source, error) {
	return s.sourceStore.ListStale(ctx, s.crawlInterval)
}

// MarkCrawled records a completed crawl and clears the force flag.
func (s *SourceService) MarkCrawled(ctx context.Context, id int64, crawled time.Time) error {
	return s.sourceStore.SetCrawlDate(ctx, id, crawled)
}

// SetForceCrawl flags or unflags a source for re-crawl.
func (s *SourceService) SetForceCrawl(ctx context.Context, id int64, force bool) error {
	return s.sourceStore.SetForceCrawl(ctx, id, force)
}

// Delete removes a source, refusing while documents reference it unless
// cascade is requested.
func (s *SourceService) Delete(ctx context.Context, id int64, cascade bool) error {
	return s.sourceStore.Delete(ctx, id, cascade)
}
