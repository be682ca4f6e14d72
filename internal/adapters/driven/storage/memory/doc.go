// Package memory provides in-memory implementations of the driven port
// interfaces.
//
// These stores back the service tests and any ephemeral usage. They follow
// the same contracts as the SQLite adapter, including the document store's
// atomicity rule: the document map and the inverted search index are guarded
// by one mutex and mutated together, so no reader observes one without the
// other.
package memory
