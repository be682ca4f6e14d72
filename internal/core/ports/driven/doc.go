// Package driven defines the outbound (driven) port interfaces.
//
// Driven ports are implemented by adapters (SQLite, in-memory) and consumed
// by core services. Services depend on these interfaces, never on a concrete
// adapter, so storage can be swapped without touching business logic.
//
// Every mutation that the domain treats as one logical change (an entity and
// its properties, a document and its search index entry) is one atomic
// operation at this boundary: adapters must never expose a partially applied
// mutation to a concurrent reader.
package driven
