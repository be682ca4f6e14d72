package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tudgoi/pika/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/tudgoi/pika/internal/core/domain"
	"github.com/tudgoi/pika/internal/core/ports/driven"
)

// defaultSearchLimit bounds Search when the caller passes no limit.
const defaultSearchLimit = 50

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pika/data/pika.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pika", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "pika.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SchemaStore returns a SchemaStore interface backed by this store.
func (s *Store) SchemaStore() driven.SchemaStore {
	return &schemaStore{store: s}
}

// EntityStore returns an EntityStore interface backed by this store.
func (s *Store) EntityStore() driven.EntityStore {
	return &entityStore{store: s}
}

// SourceStore returns a SourceStore interface backed by this store.
func (s *Store) SourceStore() driven.SourceStore {
	return &sourceStore{store: s}
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// nullString converts an empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// ==================== Schema Store ====================

// schemaStore implements driven.SchemaStore.
type schemaStore struct {
	store *Store
}

var _ driven.SchemaStore = (*schemaStore)(nil)

// Save stores a schema, its properties and its extend link atomically.
func (s *schemaStore) Save(ctx context.Context, schema domain.Schema) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	row := tx.QueryRowContext(ctx, "SELECT 1 FROM schema WHERE name = ?", schema.Name)
	if err := row.Scan(&exists); err == nil {
		return domain.ErrDuplicateSchema
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("checking schema: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema (name, abstract) VALUES (?, ?)",
		schema.Name, schema.Abstract); err != nil {
		return fmt.Errorf("inserting schema: %w", err)
	}

	for _, prop := range schema.Properties {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_property (schema_name, name, type) VALUES (?, ?, ?)",
			schema.Name, prop.Name, prop.Type); err != nil {
			return fmt.Errorf("inserting property %q: %w", prop.Name, err)
		}
	}

	if schema.Extends != "" {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_extend (schema_name, extends) VALUES (?, ?)",
			schema.Name, schema.Extends); err != nil {
			return fmt.Errorf("inserting extend link: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a schema by name with its declared properties.
func (s *schemaStore) Get(ctx context.Context, name string) (*domain.Schema, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT abstract FROM schema WHERE name = ?", name)

	schema := domain.Schema{Name: name}
	if err := row.Scan(&schema.Abstract); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning schema: %w", err)
	}

	var extends sql.NullString
	row = s.store.db.QueryRowContext(ctx,
		"SELECT extends FROM schema_extend WHERE schema_name = ?", name)
	if err := row.Scan(&extends); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("scanning extend link: %w", err)
	}
	schema.Extends = extends.String

	props, err := s.properties(ctx, name)
	if err != nil {
		return nil, err
	}
	schema.Properties = props

	return &schema, nil
}

// List returns all registered schemas.
func (s *schemaStore) List(ctx context.Context) ([]domain.Schema, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT name FROM schema ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying schemas: %w", err)
	}
	defer rows.Close()

	var names []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning schema name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schemas: %w", err)
	}

	schemas := make([]domain.Schema, 0, len(names))
	for _, name := range names {
		schema, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *schema)
	}
	return schemas, nil
}

// properties returns the properties declared directly on a schema.
func (s *schemaStore) properties(ctx context.Context, name string) ([]domain.SchemaProperty, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT name, type FROM schema_property WHERE schema_name = ? ORDER BY name", name)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	var props []domain.SchemaProperty //nolint:prealloc // size unknown from query
	for rows.Next() {
		var prop domain.SchemaProperty
		if err := rows.Scan(&prop.Name, &prop.Type); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		props = append(props, prop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}
	return props, nil
}

// ==================== Entity Store ====================

// entityStore implements driven.EntityStore.
type entityStore struct {
	store *Store
}

var _ driven.EntityStore = (*entityStore)(nil)

// CreateEntity records a new entity.
func (s *entityStore) CreateEntity(ctx context.Context, schemaName, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	row := tx.QueryRowContext(ctx,
		"SELECT 1 FROM entity WHERE schema_name = ? AND id = ?", schemaName, id)
	if err := row.Scan(&exists); err == nil {
		return domain.ErrDuplicateEntity
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("checking entity: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO entity (schema_name, id) VALUES (?, ?)", schemaName, id); err != nil {
		return fmt.Errorf("inserting entity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetEntity retrieves an entity and all its property values.
func (s *entityStore) GetEntity(ctx context.Context, schemaName, id string) (*domain.Entity, error) {
	var exists int
	row := s.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM entity WHERE schema_name = ? AND id = ?", schemaName, id)
	if err := row.Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning entity: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT property_schema_name, property_name, value
		FROM entity_property
		WHERE entity_schema_name = ? AND entity_id = ?
	`, schemaName, id)
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer rows.Close()

	entity := domain.Entity{
		SchemaName: schemaName,
		ID:         id,
		Properties: make(map[string]map[string]string),
	}
	for rows.Next() {
		var propSchema, propName, value string
		if err := rows.Scan(&propSchema, &propName, &value); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		if entity.Properties[propSchema] == nil {
			entity.Properties[propSchema] = make(map[string]string)
		}
		entity.Properties[propSchema][propName] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return &entity, nil
}

// PutProperty upserts a single property value.
func (s *entityStore) PutProperty(ctx context.Context, prop domain.EntityProperty) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO entity_property (entity_schema_name, entity_id, property_schema_name, property_name, value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(entity_schema_name, entity_id, property_schema_name, property_name) DO UPDATE SET
			value = excluded.value
	`, prop.EntitySchemaName, prop.EntityID, prop.PropertySchemaName, prop.PropertyName, prop.Value)

	if err != nil {
		return fmt.Errorf("saving property: %w", err)
	}
	return nil
}

// DeleteEntity removes the entity and its properties in one transaction.
func (s *entityStore) DeleteEntity(ctx context.Context, schemaName, id string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM entity_property WHERE entity_schema_name = ? AND entity_id = ?",
		schemaName, id); err != nil {
		return fmt.Errorf("deleting properties: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM entity WHERE schema_name = ? AND id = ?", schemaName, id)
	if err != nil {
		return fmt.Errorf("deleting entity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Source Store ====================

// sourceStore implements driven.SourceStore.
type sourceStore struct {
	store *Store
}

var _ driven.SourceStore = (*sourceStore)(nil)

// Add registers a new source URL.
func (s *sourceStore) Add(ctx context.Context, url string) (*domain.Source, error) {
	var exists int
	row := s.store.db.QueryRowContext(ctx, "SELECT 1 FROM source WHERE url = ?", url)
	if err := row.Scan(&exists); err == nil {
		return nil, domain.ErrDuplicateSource
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking source: %w", err)
	}

	result, err := s.store.db.ExecContext(ctx, "INSERT INTO source (url) VALUES (?)", url)
	if err != nil {
		return nil, fmt.Errorf("inserting source: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting source id: %w", err)
	}

	return &domain.Source{ID: id, URL: url}, nil
}

// Get retrieves a source by ID.
func (s *sourceStore) Get(ctx context.Context, id int64) (*domain.Source, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT id, url, crawl_date, force_crawl FROM source WHERE id = ?", id)
	return scanSource(row)
}

// List returns all registered sources.
func (s *sourceStore) List(ctx context.Context) ([]domain.Source, error) {
	return s.querySources(ctx,
		"SELECT id, url, crawl_date, force_crawl FROM source ORDER BY id")
}

// ListStale returns sources due for a crawl: never crawled, crawled longer
// than interval ago, or flagged with force_crawl.
func (s *sourceStore) ListStale(ctx context.Context, interval time.Duration) ([]domain.Source, error) {
	cutoff := time.Now().UTC().Add(-interval)
	return s.querySources(ctx, `
		SELECT id, url, crawl_date, force_crawl FROM source
		WHERE crawl_date IS NULL OR crawl_date < ? OR force_crawl = 1
		ORDER BY id
	`, cutoff)
}

// SetCrawlDate records a completed crawl and clears the force flag.
func (s *sourceStore) SetCrawlDate(ctx context.Context, id int64, crawled time.Time) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE source SET crawl_date = ?, force_crawl = 0 WHERE id = ?",
		crawled.UTC(), id)
	if err != nil {
		return fmt.Errorf("updating crawl date: %w", err)
	}
	return requireAffected(result)
}

// SetForceCrawl flags or unflags the source for re-crawl.
func (s *sourceStore) SetForceCrawl(ctx context.Context, id int64, force bool) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE source SET force_crawl = ? WHERE id = ?", force, id)
	if err != nil {
		return fmt.Errorf("updating force flag: %w", err)
	}
	return requireAffected(result)
}

// Delete removes a source, refusing while documents reference it unless
// cascade is set. With cascade the documents and their index entries are
// removed in the same transaction.
func (s *sourceStore) Delete(ctx context.Context, id int64, cascade bool) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if cascade {
		rows, err := tx.QueryContext(ctx,
			"SELECT id, title, content FROM document WHERE source_id = ?", id)
		if err != nil {
			return fmt.Errorf("querying documents: %w", err)
		}
		type indexed struct {
			id             int64
			title, content sql.NullString
		}
		var docs []indexed
		for rows.Next() {
			var doc indexed
			if err := rows.Scan(&doc.id, &doc.title, &doc.content); err != nil {
				rows.Close()
				return fmt.Errorf("scanning document: %w", err)
			}
			docs = append(docs, doc)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating documents: %w", err)
		}

		for _, doc := range docs {
			if err := deleteIndexEntry(ctx, tx, doc.id, doc.title.String, doc.content.String); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM document WHERE source_id = ?", id); err != nil {
			return fmt.Errorf("deleting documents: %w", err)
		}
	} else {
		var count int
		row := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM document WHERE source_id = ?", id)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("counting documents: %w", err)
		}
		if count > 0 {
			return domain.ErrSourceInUse
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM source WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// querySources runs a query returning full source rows.
func (s *sourceStore) querySources(ctx context.Context, query string, args ...any) ([]domain.Source, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source //nolint:prealloc // size unknown from query
	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, *source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}
	return sources, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSource(row scanner) (*domain.Source, error) {
	var source domain.Source
	var crawlDate sql.NullTime
	if err := row.Scan(&source.ID, &source.URL, &crawlDate, &source.ForceCrawl); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source: %w", err)
	}
	if crawlDate.Valid {
		source.CrawlDate = crawlDate.Time
	}
	return &source, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
//
// fts_document is written explicitly inside the same transaction as every
// document mutation, so the row and its index entry commit or roll back
// together.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Insert stores a new document and indexes it. At most one document may
// exist per source; the UNIQUE constraint on source_id backstops inserts
// that raced past the existence check.
func (s *documentStore) Insert(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	row := tx.QueryRowContext(ctx,
		"SELECT 1 FROM document WHERE source_id = ?", doc.SourceID)
	if err := row.Scan(&exists); err == nil {
		return nil, domain.ErrDuplicateDocument
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking document: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO document (source_id, hash, retrieved_date, etag, title, content)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.SourceID, doc.Hash, doc.RetrievedDate.UTC(),
		nullString(doc.Etag), nullString(doc.Title), doc.Content)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: document.source_id") {
			return nil, domain.ErrDuplicateDocument
		}
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting document id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO fts_document (rowid, title, content) VALUES (?, ?, ?)",
		id, doc.Title, doc.Content); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexSync, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	inserted := *doc
	inserted.ID = id
	return &inserted, nil
}

// Replace overwrites a document's content and rewrites its index entry.
func (s *documentStore) Replace(ctx context.Context, doc *domain.Document) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The old indexed terms are needed to remove the entry from the
	// external-content FTS table.
	var oldTitle, oldContent sql.NullString
	row := tx.QueryRowContext(ctx,
		"SELECT title, content FROM document WHERE id = ?", doc.ID)
	if err := row.Scan(&oldTitle, &oldContent); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return fmt.Errorf("scanning document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE document SET hash = ?, retrieved_date = ?, etag = ?, title = ?, content = ?
		WHERE id = ?
	`, doc.Hash, doc.RetrievedDate.UTC(), nullString(doc.Etag),
		nullString(doc.Title), doc.Content, doc.ID); err != nil {
		return fmt.Errorf("updating document: %w", err)
	}

	if err := deleteIndexEntry(ctx, tx, doc.ID, oldTitle.String, oldContent.String); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO fts_document (rowid, title, content) VALUES (?, ?, ?)",
		doc.ID, doc.Title, doc.Content); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrIndexSync, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Refresh updates crawl metadata for unchanged content. No index write.
func (s *documentStore) Refresh(ctx context.Context, id int64, retrieved time.Time, etag string) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE document SET retrieved_date = ?, etag = ? WHERE id = ?",
		retrieved.UTC(), nullString(etag), id)
	if err != nil {
		return fmt.Errorf("refreshing document: %w", err)
	}
	return requireAffected(result)
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, hash, retrieved_date, etag, title, content
		FROM document WHERE id = ?
	`, id)
	return scanDocument(row)
}

// GetBySource retrieves the live document for a source.
func (s *documentStore) GetBySource(ctx context.Context, sourceID int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, source_id, hash, retrieved_date, etag, title, content
		FROM document WHERE source_id = ?
	`, sourceID)
	return scanDocument(row)
}

// Delete removes a document and its index entry in one transaction.
func (s *documentStore) Delete(ctx context.Context, id int64) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var title, content sql.NullString
	row := tx.QueryRowContext(ctx,
		"SELECT title, content FROM document WHERE id = ?", id)
	if err := row.Scan(&title, &content); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return fmt.Errorf("scanning document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM document WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if err := deleteIndexEntry(ctx, tx, id, title.String, content.String); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Rebuild reconstructs the FTS index from the document table.
func (s *documentStore) Rebuild(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx,
		"INSERT INTO fts_document (fts_document) VALUES ('rebuild')"); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrIndexSync, err)
	}
	return nil
}

// Search runs an FTS5 query over title and content. bm25 returns lower
// values for better matches; the score is negated so higher is better, and
// ties are broken by document ID for deterministic ordering.
func (s *documentStore) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT d.id, s.url, COALESCE(d.title, ''),
		       snippet(fts_document, -1, '<b>', '</b>', '...', 16),
		       -bm25(fts_document)
		FROM fts_document
		JOIN document AS d ON d.id = fts_document.rowid
		JOIN source AS s ON s.id = d.source_id
		WHERE fts_document MATCH ?
		ORDER BY bm25(fts_document), d.id
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var result domain.SearchResult
		if err := rows.Scan(&result.DocumentID, &result.SourceURL,
			&result.Title, &result.Snippet, &result.Score); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

// deleteIndexEntry removes a document's entry from the external-content FTS
// table, which requires replaying the old column values.
func deleteIndexEntry(ctx context.Context, tx *sql.Tx, id int64, title, content string) error {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO fts_document (fts_document, rowid, title, content) VALUES ('delete', ?, ?, ?)",
		id, title, content); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrIndexSync, err)
	}
	return nil
}

func scanDocument(row scanner) (*domain.Document, error) {
	var doc domain.Document
	var retrieved sql.NullTime
	var etag, title sql.NullString
	if err := row.Scan(&doc.ID, &doc.SourceID, &doc.Hash,
		&retrieved, &etag, &title, &doc.Content); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	if retrieved.Valid {
		doc.RetrievedDate = retrieved.Time
	}
	doc.Etag = etag.String
	doc.Title = title.String
	return &doc, nil
}
