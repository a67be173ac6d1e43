package dsl_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goaction"
	g "github.com/reoring/goaction/dsl"
)

func TestMerge_AddsAndOverridesFields(t *testing.T) {
	ctx := context.Background()
	a := g.Object().
		Field("name", g.String()).Required().
		Field("age", g.String()).Required().
		MustBuild()
	b := g.Object().
		Field("age", g.Int()).
		Field("email", g.String()).Required().
		MustBuild()

	merged, ok := a.(goaction.Merger).Merge(b)
	if !ok {
		t.Fatalf("object schemas should merge")
	}

	v, err := merged.Parse(ctx, map[string]any{"name": "John", "email": "j@example.com"})
	if err != nil {
		t.Fatalf("age became optional with the later fragment, got %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "John", "email": "j@example.com"}, v); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	if _, err := merged.Parse(ctx, map[string]any{"name": "John", "email": "x", "age": "old"}); err == nil {
		t.Fatalf("later age schema (int) must win")
	}
	if _, err := a.Parse(ctx, map[string]any{"name": "John", "age": "old"}); err != nil {
		t.Fatalf("merge must not modify the original fragment: %v", err)
	}
}

type funcSchema func(context.Context, any) (map[string]any, error)

func (f funcSchema) Parse(ctx context.Context, v any) (map[string]any, error) { return f(ctx, v) }

func TestMerge_ForeignSchemaDeclines(t *testing.T) {
	a := g.Object().Field("name", g.String()).MustBuild()
	foreign := funcSchema(func(context.Context, any) (map[string]any, error) { return nil, nil })
	if _, ok := a.(goaction.Merger).Merge(foreign); ok {
		t.Fatalf("merge with a foreign schema should decline")
	}
}

func TestJSONSchema_Object(t *testing.T) {
	s := g.Object().
		Field("name", g.String().Min(1)).Required().
		Field("tags", g.Array(g.String())).
		Strict().
		MustBuild()
	out, err := s.(goaction.JSONSchemer).JSONSchema()
	if err != nil {
		t.Fatalf("json schema: %v", err)
	}
	if out.Type != "object" || out.AdditionalProperties != false {
		t.Fatalf("unexpected object schema: %+v", out)
	}
	if diff := cmp.Diff([]string{"name"}, out.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if out.Properties["name"].MinLength == nil || *out.Properties["name"].MinLength != 1 {
		t.Fatalf("minLength not exported: %+v", out.Properties["name"])
	}
	if out.Properties["tags"].Items == nil || out.Properties["tags"].Items.Type != "string" {
		t.Fatalf("array items not exported: %+v", out.Properties["tags"])
	}
}
