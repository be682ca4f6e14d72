package domain

import "time"

// Source is a crawlable URL. The crawler itself lives outside this module;
// sources carry just enough metadata for it to decide what to fetch next.
type Source struct {
	// ID is the store-assigned identifier.
	ID int64

	// URL is the location to crawl. Unique across sources.
	URL string

	// CrawlDate is when the source was last crawled. Zero if never.
	CrawlDate time.Time

	// ForceCrawl requests a re-crawl on the next pass regardless of
	// CrawlDate.
	ForceCrawl bool
}

// Stale reports whether the source is due for a crawl: never crawled,
// last crawled before now minus interval, or explicitly flagged.
func (s *Source) Stale(now time.Time, interval time.Duration) bool {
	if s.ForceCrawl {
		return true
	}
	if s.CrawlDate.IsZero() {
		return true
	}
	return now.Sub(s.CrawlDate) > interval
}
