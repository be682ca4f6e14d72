package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// defaultSearchLimit bounds Search when the caller passes no limit.
const defaultSearchLimit = 50

// snippetWords is how many terms around the first match go into a snippet.
const snippetWords = 16

// DocumentStore is an in-memory implementation of driven.DocumentStore.
//
// The document map and the inverted index share one mutex and are mutated
// together, mirroring the SQLite adapter's single-transaction dual write:
// a reader never sees a document without its index entry or vice versa.
type DocumentStore struct {
	mu        sync.RWMutex
	nextID    int64
	documents map[int64]domain.Document

	// index maps term -> document ID -> occurrence count.
	index map[string]map[int64]int
	// termCounts maps document ID -> total indexed terms, for scoring.
	termCounts map[int64]int

	sources *SourceStore
}

// NewDocumentStore creates a new in-memory document store. The source store
// may be nil; it supplies source URLs for search results and lets source
// deletion honour the in-use check.
func NewDocumentStore(sources *SourceStore) *DocumentStore {
	s := &DocumentStore{
		documents:  make(map[int64]domain.Document),
		index:      make(map[string]map[int64]int),
		termCounts: make(map[int64]int),
		sources:    sources,
	}
	if sources != nil {
		sources.documents = s
	}
	return s
}

// Insert stores a new document and indexes it. At most one document may
// exist per source.
func (s *DocumentStore) Insert(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.documents {
		if existing.SourceID == doc.SourceID {
			return nil, domain.ErrDuplicateDocument
		}
	}
	s.nextID++
	inserted := *doc
	inserted.ID = s.nextID
	s.documents[inserted.ID] = inserted
	s.indexLocked(inserted.ID, inserted.Title, inserted.Content)
	return &inserted, nil
}

// Replace overwrites a document's content and rewrites its index entry.
func (s *DocumentStore) Replace(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.documents[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	s.unindexLocked(doc.ID, old.Title, old.Content)
	s.documents[doc.ID] = *doc
	s.indexLocked(doc.ID, doc.Title, doc.Content)
	return nil
}

// Refresh updates crawl metadata without touching the index.
func (s *DocumentStore) Refresh(_ context.Context, id int64, retrieved time.Time, etag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.RetrievedDate = retrieved
	doc.Etag = etag
	s.documents[id] = doc
	return nil
}

// Get retrieves a document by ID.
func (s *DocumentStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetBySource retrieves the live document for a source.
func (s *DocumentStore) GetBySource(_ context.Context, sourceID int64) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.SourceID == sourceID {
			found := doc
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Delete removes a document and its index entry together.
func (s *DocumentStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.unindexLocked(id, doc.Title, doc.Content)
	delete(s.documents, id)
	return nil
}

// Rebuild reconstructs the inverted index from the stored documents.
func (s *DocumentStore) Rebuild(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(map[string]map[int64]int)
	s.termCounts = make(map[int64]int)
	for id, doc := range s.documents {
		s.indexLocked(id, doc.Title, doc.Content)
	}
	return nil
}

// Search matches documents containing every query term, scored by summed
// term frequency. Ordering is score descending, document ID ascending.
func (s *DocumentStore) Search(_ context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	scores := make(map[int64]float64)
	for i, term := range terms {
		postings := s.index[term]
		for id, count := range postings {
			if i > 0 {
				if _, ok := scores[id]; !ok {
					continue
				}
			}
			scores[id] += float64(count) / float64(s.termCounts[id])
		}
		// Every term must match; drop documents missing this one.
		for id := range scores {
			if _, ok := postings[id]; !ok {
				delete(scores, id)
			}
		}
	}

	results := make([]domain.SearchResult, 0, len(scores))
	for id, score := range scores {
		doc := s.documents[id]
		results = append(results, domain.SearchResult{
			DocumentID: id,
			Title:      doc.Title,
			Snippet:    snippet(doc.Content, terms[0]),
			Score:      score,
		})
	}

	sourceIDs := make(map[int64]int64, len(results))
	for i := range results {
		sourceIDs[results[i].DocumentID] = s.documents[results[i].DocumentID].SourceID
	}
	s.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocumentID < results[j].DocumentID
	})
	if len(results) > limit {
		results = results[:limit]
	}

	// URL lookup happens outside the document lock to keep lock ordering
	// one way between the two stores.
	if s.sources != nil {
		for i := range results {
			if source, err := s.sources.Get(context.Background(), sourceIDs[results[i].DocumentID]); err == nil {
				results[i].SourceURL = source.URL
			}
		}
	}
	return results, nil
}

// hasSource reports whether any document references the source.
func (s *DocumentStore) hasSource(sourceID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.documents {
		if doc.SourceID == sourceID {
			return true
		}
	}
	return false
}

// deleteBySource removes all documents for a source with their index entries.
func (s *DocumentStore) deleteBySource(sourceID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, doc := range s.documents {
		if doc.SourceID == sourceID {
			s.unindexLocked(id, doc.Title, doc.Content)
			delete(s.documents, id)
		}
	}
}

// indexLocked adds a document's terms to the index. Caller holds the lock.
func (s *DocumentStore) indexLocked(id int64, title, content string) {
	terms := tokenize(title + " " + content)
	for _, term := range terms {
		if s.index[term] == nil {
			s.index[term] = make(map[int64]int)
		}
		s.index[term][id]++
	}
	s.termCounts[id] = len(terms)
}

// unindexLocked removes a document's terms from the index. Caller holds the
// lock.
func (s *DocumentStore) unindexLocked(id int64, title, content string) {
	for _, term := range tokenize(title + " " + content) {
		postings := s.index[term]
		if postings == nil {
			continue
		}
		postings[id]--
		if postings[id] <= 0 {
			delete(postings, id)
		}
		if len(postings) == 0 {
			delete(s.index, term)
		}
	}
	delete(s.termCounts, id)
}

// tokenize lowercases text and splits it on non-alphanumeric runes.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// snippet extracts a window of words around the first occurrence of term,
// highlighting the match the way the SQLite adapter's snippet() does.
func snippet(content, term string) string {
	words := strings.Fields(content)
	match := -1
	for i, word := range words {
		if strings.Contains(strings.ToLower(word), term) {
			match = i
			break
		}
	}
	if match == -1 {
		if len(words) > snippetWords {
			words = words[:snippetWords]
			return strings.Join(words, " ") + "..."
		}
		return strings.Join(words, " ")
	}

	start := match - snippetWords/2
	if start < 0 {
		start = 0
	}
	end := start + snippetWords
	if end > len(words) {
		end = len(words)
	}

	window := make([]string, end-start)
	copy(window, words[start:end])
	window[match-start] = fmt.Sprintf("<b>%s</b>", window[match-start])

	out := strings.Join(window, " ")
	if start > 0 {
		out = "..." + out
	}
	if end < len(words) {
		out += "..."
	}
	return out
}
