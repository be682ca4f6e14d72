package driving

import (
	"context"
	"time"

	"github.com/tudgoi/pika/internal/core/domain"
)

// SourceService manages crawl sources. The crawler itself is an external
// collaborator; it reads Stale and reports back via MarkCrawled.
type SourceService interface {
	// Add registers a source URL.
	Add(ctx context.Context, url string) (*domain.Source, error)

	// Get retrieves a source by ID.
	Get(ctx context.Context, id int64) (*domain.Source, error)

	// List returns all registered sources.
	List(ctx context.Context) ([]domain.Source, error)

	// Stale returns sources due for a crawl under the configured interval.
	Stale(ctx context.Context) ([]domain.Source, error)

	// MarkCrawled records a completed crawl and clears the force flag.
	MarkCrawled(ctx context.Context, id int64, crawled time.Time) error

	// SetForceCrawl flags or unflags a source for re-crawl.
	SetForceCrawl(ctx context.Context, id int64, force bool) error

	// Delete removes a source. Without cascade it fails with
	// domain.ErrSourceInUse while documents reference the source; with
	// cascade the documents and their index entries go with it.
	Delete(ctx context.Context, id int64, cascade bool) error
}
