// Package sqlite provides a unified SQLite-based implementation of the
// driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements the store
// interfaces through a single database connection:
//
//   - SchemaStore: schema definitions, properties and extend links
//   - EntityStore: entities and their property values
//   - SourceStore: crawl sources
//   - DocumentStore: documents plus the FTS5 index over them
//
// # Schema
//
// The database schema is managed through versioned migrations embedded from
// the migrations/ directory and applied at open time.
//
// # Search index consistency
//
// fts_document is an external-content FTS5 table over document(title,
// content). It is not maintained by triggers: every Insert, Replace and
// Delete on documents writes the index inside the same transaction as the
// row, so readers always observe the row and its index entry together. The
// index is a cache and can be rebuilt from the document table at any time.
package sqlite
