// Package jsonschema holds the minimal JSON Schema representation that action
// schemas export for documentation and client generation.
package jsonschema

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Type     string `json:"type,omitempty"`
	Format   string `json:"format,omitempty"`
	Default  any    `json:"default,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`

	// Numbers and strings
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Composition
	AllOf []*Schema `json:"allOf,omitempty"`
}

// AllOf composes schemas that must all hold. nil entries are skipped.
func AllOf(parts ...*Schema) *Schema {
	out := &Schema{}
	for _, p := range parts {
		if p != nil {
			out.AllOf = append(out.AllOf, p)
		}
	}
	return out
}
