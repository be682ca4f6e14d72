package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSource_Stale(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	interval := 12 * time.Hour

	tests := []struct {
		name   string
		source Source
		want   bool
	}{
		{
			name:   "never crawled",
			source: Source{URL: "https://example.com"},
			want:   true,
		},
		{
			name:   "recently crawled",
			source: Source{CrawlDate: now.Add(-time.Hour)},
			want:   false,
		},
		{
			name:   "crawled too long ago",
			source: Source{CrawlDate: now.Add(-13 * time.Hour)},
			want:   true,
		},
		{
			name:   "force flag overrides fresh crawl",
			source: Source{CrawlDate: now.Add(-time.Minute), ForceCrawl: true},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.source.Stale(now, interval))
		})
	}
}
