package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Document is the content retrieved for a source, deduplicated by a
// fingerprint over the content. A source has at most one live document.
type Document struct {
	// ID is the store-assigned identifier. The search index is keyed by it.
	ID int64

	// SourceID links to the Source this document was retrieved from.
	SourceID int64

	// Hash is the content fingerprint. A re-crawl that produces the same
	// hash refreshes RetrievedDate/Etag without rewriting content or
	// touching the search index.
	Hash string

	// RetrievedDate is when the content was last fetched.
	RetrievedDate time.Time

	// Etag is the origin's cache validator from the last fetch, if any.
	Etag string

	// Title is the document title, if one was extracted.
	Title string

	// Content is the full text content.
	Content string
}

// Fingerprint computes the content hash used for document deduplication.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
