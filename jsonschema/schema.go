package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// BSONType carries the MongoDB $jsonSchema annotation so the export can seed a
// collection validator directly.
type Schema struct {
	// Core
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	BSONType string `json:"bsonType,omitempty" yaml:"bsonType,omitempty"`
	Format   string `json:"format,omitempty" yaml:"format,omitempty"`
	Default  any    `json:"default,omitempty" yaml:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`
}
