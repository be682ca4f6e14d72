package domain

// SearchResult is a single full-text search hit over the document index.
type SearchResult struct {
	// DocumentID is the matched document.
	DocumentID int64

	// SourceURL is the URL of the document's source.
	SourceURL string

	// Title is the document title.
	Title string

	// Snippet is an extract of the content around the matched terms.
	Snippet string

	// Score is the relevance score. Higher is more relevant. Results are
	// ordered descending by score, ties broken by DocumentID ascending.
	Score float64
}
