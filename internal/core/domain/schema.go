package domain

// Schema is a named set of typed properties. Abstract schemas act as
// templates: they can be extended but not instantiated.
type Schema struct {
	// Name is the unique identifier for the schema.
	Name string

	// Abstract marks the schema as template-only.
	Abstract bool

	// Extends names the parent schema, if any. Extension is single
	// inheritance: at most one parent, and the chain must be acyclic.
	Extends string

	// Properties are the properties declared directly on this schema.
	// Inherited properties are not repeated here; ResolvedSchema carries
	// the merged view.
	Properties []SchemaProperty
}

// SchemaProperty is a property declared on a schema.
type SchemaProperty struct {
	// Name is unique within the declaring schema.
	Name string

	// Type is a semantic type tag (string, number, date, ...).
	// It is stored as text and interpreted by the caller.
	Type string
}

// ResolvedProperty is a property visible on a schema after walking its
// extension chain. DeclaredBy records which schema in the chain declared
// the winning definition.
type ResolvedProperty struct {
	// DeclaredBy is the schema that declared this property. When a child
	// redeclares an ancestor's property, DeclaredBy names the child.
	DeclaredBy string

	// Name is the property name.
	Name string

	// Type is the declared type tag.
	Type string
}

// ResolvedSchema is the effective property set of a schema: every property
// declared on the schema or any of its ancestors, with redeclarations at a
// more specific level shadowing the ancestor's.
type ResolvedSchema struct {
	// Name is the schema the resolution started from.
	Name string

	// Abstract mirrors the schema's abstract flag.
	Abstract bool

	// Properties maps property name to its winning definition.
	Properties map[string]ResolvedProperty
}

// Lookup returns the resolved property with the given name, or false.
func (r *ResolvedSchema) Lookup(name string) (ResolvedProperty, bool) {
	prop, ok := r.Properties[name]
	return prop, ok
}
