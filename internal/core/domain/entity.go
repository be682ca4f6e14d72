package domain

// Entity is an instance of a schema. Its fields are not fixed columns but
// rows of (property schema, property name, value), so any property declared
// on the schema or an ancestor can be set.
type Entity struct {
	// SchemaName is the schema this entity instantiates.
	SchemaName string

	// ID identifies the entity within its schema.
	ID string

	// Properties maps declaring schema name to property name to value.
	// The nesting mirrors the storage key: a property set via an ancestor
	// schema appears under that ancestor's name.
	Properties map[string]map[string]string
}

// Value returns the value set for the given (property schema, property name),
// or false if the entity has no such assignment.
func (e *Entity) Value(propertySchema, propertyName string) (string, bool) {
	props, ok := e.Properties[propertySchema]
	if !ok {
		return "", false
	}
	value, ok := props[propertyName]
	return value, ok
}

// EntityProperty is a single property assignment on an entity.
// The full key is (entity schema, entity id, property schema, property name).
type EntityProperty struct {
	// EntitySchemaName and EntityID identify the owning entity.
	EntitySchemaName string
	EntityID         string

	// PropertySchemaName is the schema that declared the property. For an
	// inherited property this is an ancestor of the entity's schema.
	PropertySchemaName string

	// PropertyName is the declared property name.
	PropertyName string

	// Value is the assigned value, stored as text.
	Value string
}
