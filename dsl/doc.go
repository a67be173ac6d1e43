// Package dsl provides the zod-like schema DSL used to describe action input
// and output.
//
// # Overview
//
//   - Object(): declare object semantics (required/unknown/default/refine) with
//     Field/Required/Strict/MustBuild. Unknown keys are stripped by default, so an
//     output schema doubles as an allow-list.
//   - Primitives: String(), Number(), Int(), Bool(), Any(), Array(elem), Nested(schema).
//   - Modifiers: Min/Max (value for numbers, length for strings and arrays),
//     Nullable, Default.
//   - Merge: object schemas implement goaction.Merger, so fragments passed to
//     repeated Builder.Input/Output calls combine into one object.
//
// # Error model
//
// Failures are goaction.Issues with JSON Pointer paths. Nested fields and
// array elements are rebased under their parent path, and issues are sorted
// by field name.
//
// # Example
//
//	user := g.Object().
//	    Field("name", g.String().Min(1)).Required().
//	    Field("age", g.Int().Min(0)).
//	    MustBuild()
//	v, err := user.Parse(ctx, map[string]any{"name": "Reo", "extra": true})
//	// v == map[string]any{"name": "Reo"}
package dsl
