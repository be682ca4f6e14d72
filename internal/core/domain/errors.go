package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Schema Errors.

	// ErrUnknownSchema indicates a referenced schema is not registered.
	ErrUnknownSchema = errors.New("unknown schema")

	// ErrDuplicateSchema indicates a schema with that name is already registered.
	ErrDuplicateSchema = errors.New("schema already exists")

	// ErrUnknownParent indicates an extends target that is not registered.
	ErrUnknownParent = errors.New("unknown parent schema")

	// ErrCyclicInheritance indicates an extends link that would close a cycle.
	ErrCyclicInheritance = errors.New("cyclic schema inheritance")

	// ErrAbstractSchema indicates an attempt to instantiate an abstract schema.
	ErrAbstractSchema = errors.New("schema is abstract")

	// Entity Errors.

	// ErrDuplicateEntity indicates an entity with that (schema, id) already exists.
	ErrDuplicateEntity = errors.New("entity already exists")

	// ErrUnknownProperty indicates a property not declared on the entity's
	// schema or any of its ancestors.
	ErrUnknownProperty = errors.New("unknown property")

	// Document Errors.

	// ErrUnknownSource indicates a document references a source that is not registered.
	ErrUnknownSource = errors.New("unknown source")

	// ErrDuplicateDocument indicates the source already has a live document.
	// A source has at most one; updates go through Replace or Refresh.
	ErrDuplicateDocument = errors.New("source already has a document")

	// ErrDuplicateSource indicates a source with that URL is already registered.
	ErrDuplicateSource = errors.New("source already exists")

	// ErrSourceInUse indicates a source cannot be deleted because documents
	// still reference it.
	ErrSourceInUse = errors.New("source is in use by one or more documents")

	// ErrIndexSync indicates the search index half of a document mutation
	// could not be applied. The document mutation is rolled back with it;
	// the store is never left with a document/index mismatch.
	ErrIndexSync = errors.New("search index update failed")
)
