// Package domain defines the core business entities for Pika.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Schema: A named, optionally abstract property set with single-parent extension
//   - SchemaProperty: A typed property declared on a schema
//   - Entity: An instance of a schema, identified by (schema name, id)
//   - Source: A crawlable URL with crawl metadata
//   - Document: Content retrieved for a source, deduplicated by content hash
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
