package goaction

import (
	"context"
	"maps"
	"strings"

	js "github.com/reoring/goaction/jsonschema"
)

// Schema is the validation contract consumed by Builder.Input and
// Builder.Output. Parse returns the validated (possibly projected) value, or
// Issues on structural failure. Any other error is treated as a fault of the
// validator itself.
type Schema interface {
	Parse(ctx context.Context, v any) (map[string]any, error)
}

// Merger is implemented by schemas that can combine structurally with a later
// fragment. The later fragment adds or overrides fields. ok is false when next
// is not a shape the receiver understands.
type Merger interface {
	Merge(next Schema) (merged Schema, ok bool)
}

// JSONSchemer is implemented by schemas that can describe themselves.
type JSONSchemer interface {
	JSONSchema() (*js.Schema, error)
}

// combine folds fragments left to right. It returns nil for an empty list so
// that callers bypass validation entirely.
func combine(fragments []Schema) Schema {
	if len(fragments) == 0 {
		return nil
	}
	acc := fragments[0]
	for _, f := range fragments[1:] {
		if m, ok := acc.(Merger); ok {
			if merged, ok := m.Merge(f); ok {
				acc = merged
				continue
			}
		}
		acc = overlay{first: acc, second: f}
	}
	return acc
}

// overlay combines two schemas that cannot merge structurally: both parse the
// same input and the outputs are shallow-merged, second wins.
type overlay struct{ first, second Schema }

func (o overlay) Parse(ctx context.Context, v any) (map[string]any, error) {
	a, errA := o.first.Parse(ctx, v)
	b, errB := o.second.Parse(ctx, v)
	issA, okA := AsIssues(errA)
	issB, okB := AsIssues(errB)
	switch {
	case errA != nil && !okA:
		return nil, errA
	case errB != nil && !okB:
		return nil, errB
	case okA || okB:
		return nil, AppendIssues(issA, issB...)
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out, nil
}

func (o overlay) JSONSchema() (*js.Schema, error) {
	return js.AllOf(jsonSchemaOf(o.first), jsonSchemaOf(o.second)), nil
}

func jsonSchemaOf(s Schema) *js.Schema {
	if s == nil {
		return nil
	}
	if j, ok := s.(JSONSchemer); ok {
		if out, err := j.JSONSchema(); err == nil && out != nil {
			return out
		}
	}
	return &js.Schema{}
}

type direction uint8

const (
	directionInput direction = iota
	directionOutput
)

func (d direction) code() Code {
	if d == directionOutput {
		return CodeParseOutputError
	}
	return CodeParseInputError
}

// validate runs s against v. Structural failures become an *ActionError tagged
// with the direction's parse code; validator faults are returned unchanged for
// the invocation boundary to classify.
func validate(ctx context.Context, s Schema, v any, d direction) (map[string]any, error) {
	out, err := s.Parse(ctx, v)
	if err == nil {
		return out, nil
	}
	iss, ok := AsIssues(err)
	if !ok {
		return nil, err
	}
	msg := strings.Join(iss.Lines(), "\n")
	return nil, NewError(d.code(), msg, iss)
}
