// Package services implements the core business logic.
//
// Services implement the driving port interfaces and depend only on driven
// port interfaces, never on concrete adapters:
//
//   - SchemaService: schema registration and inheritance resolution
//   - EntityService: schema-validated entity and property storage
//   - DocumentService: document ingestion with hash dedup and full-text search
//   - SourceService: crawl source management
//   - SchemaLoader: registration of parsed schema definitions in dependency order
package services
