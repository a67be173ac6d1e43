package dsl

import (
	"context"
	"maps"
	"slices"

	"github.com/reoring/goaction"
)

// UnknownPolicy controls how keys without a field are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                           // Reject unknown keys with an issue.
	UnknownPassthrough                      // Keep unknown keys as they are.
)

type objectBuilder struct {
	fields   map[string]Adapter
	required map[string]struct{}
	unknown  UnknownPolicy
	refines  []objRefine
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder. Unknown keys are stripped unless
// Strict or Passthrough is selected.
func Object() *objectBuilder {
	return &objectBuilder{
		fields:   map[string]Adapter{},
		required: map[string]struct{}{},
		unknown:  UnknownStrip,
	}
}

// Field registers a field with its adapter. Fields are optional until marked.
func (b *objectBuilder) Field(name string, ad Adapter) *fieldStep {
	b.fields[name] = ad
	return &fieldStep{b: b, name: name}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.name] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.name)
	return f.b
}

func (f *fieldStep) Field(name string, ad Adapter) *fieldStep { return f.b.Field(name, ad) }
func (f *fieldStep) Require(names ...string) *objectBuilder   { return f.b.Require(names...) }
func (f *fieldStep) Strict() *objectBuilder                   { return f.b.Strict() }
func (f *fieldStep) Strip() *objectBuilder                    { return f.b.Strip() }
func (f *fieldStep) Passthrough() *objectBuilder              { return f.b.Passthrough() }
func (f *fieldStep) Build() (goaction.Schema, error)          { return f.b.Build() }
func (f *fieldStep) MustBuild() goaction.Schema               { return f.b.MustBuild() }
func (f *fieldStep) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	return f.b.Refine(name, fn)
}

// Require marks one or more fields as required.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// Strict rejects unknown keys.
func (b *objectBuilder) Strict() *objectBuilder {
	b.unknown = UnknownStrict
	return b
}

// Strip drops unknown keys.
func (b *objectBuilder) Strip() *objectBuilder {
	b.unknown = UnknownStrip
	return b
}

// Passthrough keeps unknown keys unchanged.
func (b *objectBuilder) Passthrough() *objectBuilder {
	b.unknown = UnknownPassthrough
	return b
}

// Refine adds an object-level check executed after all fields parsed.
func (b *objectBuilder) Refine(name string, fn func(context.Context, map[string]any) error) *objectBuilder {
	if fn == nil {
		return b
	}
	b.refines = append(b.refines, objRefine{name: name, fn: fn})
	return b
}

// Build validates the builder and returns a snapshot Schema. Later changes to
// the builder do not affect the returned schema.
func (b *objectBuilder) Build() (goaction.Schema, error) {
	for n := range b.required {
		if _, ok := b.fields[n]; !ok {
			return nil, goaction.Issues{{Path: "/" + n, Code: goaction.CodeParseError, Message: "required field has no schema", Hint: "declare the field before requiring it"}}
		}
	}
	return newObjectSchema(maps.Clone(b.fields), maps.Clone(b.required), b.unknown, slices.Clone(b.refines)), nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() goaction.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
