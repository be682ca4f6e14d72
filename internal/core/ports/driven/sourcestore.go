package driven

import (
	"context"
	"time"

	"github.com/tudgoi/pika/internal/core/domain"
)

// SourceStore persists crawl sources.
type SourceStore interface {
	// Add registers a new source URL and returns it with its assigned ID.
	// Returns domain.ErrDuplicateSource if the URL is already registered.
	Add(ctx context.Context, url string) (*domain.Source, error)

	// Get retrieves a source by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id int64) (*domain.Source, error)

	// List returns all registered sources.
	List(ctx context.Context) ([]domain.Source, error)

	// ListStale returns sources due for a crawl: never crawled, crawled
	// longer than interval ago, or flagged with force_crawl.
	ListStale(ctx context.Context, interval time.Duration) ([]domain.Source, error)

	// SetCrawlDate records a completed crawl and clears the force flag.
	// Returns domain.ErrNotFound if the source does not exist.
	SetCrawlDate(ctx context.Context, id int64, crawled time.Time) error

	// SetForceCrawl flags or unflags the source for re-crawl.
	// Returns domain.ErrNotFound if the source does not exist.
	SetForceCrawl(ctx context.Context, id int64, force bool) error

	// Delete removes a source. With cascade false it returns
	// domain.ErrSourceInUse while documents still reference the source.
	// With cascade true the source, its documents and their index entries
	// are removed as one atomic unit.
	Delete(ctx context.Context, id int64, cascade bool) error
}
