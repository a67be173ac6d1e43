package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/goaction"
	g "github.com/reoring/goaction/dsl"
)

func TestStringSchema_Basic(t *testing.T) {
	s := g.String()
	ctx := context.Background()

	v, err := s.Parse(ctx, "hello")
	if err != nil || v != "hello" {
		t.Fatalf("parse ok expected, got v=%v err=%v", v, err)
	}

	_, err = s.Parse(ctx, 1)
	iss, ok := goaction.AsIssues(err)
	if !ok || len(iss) == 0 || iss[0].Code != goaction.CodeInvalidType {
		t.Fatalf("expected invalid_type, got %v", err)
	}
	if iss[0].Message != "expected string" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
}

func TestBoolSchema_Basic(t *testing.T) {
	s := g.Bool()
	ctx := context.Background()

	v, err := s.Parse(ctx, true)
	if err != nil || v != true {
		t.Fatalf("parse ok expected, got v=%v err=%v", v, err)
	}
	if _, err = s.Parse(ctx, "nope"); err == nil {
		t.Fatalf("expected error for invalid type")
	}
}

func TestNumberSchema_AcceptsNumericKinds(t *testing.T) {
	ctx := context.Background()
	for _, in := range []any{1, int64(2), uint8(3), float32(1.5), 2.25, json.Number("4.5")} {
		if _, err := g.Number().Parse(ctx, in); err != nil {
			t.Fatalf("number %T(%v) should parse: %v", in, in, err)
		}
	}
	if _, err := g.Number().Parse(ctx, "1.0"); err == nil {
		t.Fatalf("expected invalid_type for string input to number")
	}
}

func TestIntSchema_RejectsFractions(t *testing.T) {
	ctx := context.Background()
	v, err := g.Int().Parse(ctx, 25.0)
	if err != nil || v != 25 {
		t.Fatalf("int parse expected 25, got v=%v err=%v", v, err)
	}
	if _, err := g.Int().Parse(ctx, 2.5); err == nil {
		t.Fatalf("expected error for fractional value")
	}
}

func TestBounds(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		ad   g.Adapter
		in   any
		code string
	}{
		{"number below min", g.Number().Min(1), 0, goaction.CodeTooSmall},
		{"number above max", g.Int().Max(10), 11, goaction.CodeTooBig},
		{"string too short", g.String().Min(2), "a", goaction.CodeTooShort},
		{"string too long", g.String().Max(2), "abc", goaction.CodeTooLong},
		{"array too short", g.Array(g.String()).Min(1), []any{}, goaction.CodeTooShort},
		{"ok", g.String().Min(1).Max(3), "ab", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.ad.Parse(ctx, tc.in)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			iss, ok := goaction.AsIssues(err)
			if !ok || iss[0].Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestArray_RebasesElementPaths(t *testing.T) {
	ctx := context.Background()
	_, err := g.Array(g.String()).Parse(ctx, []any{"a", 1, "c", false})
	iss, ok := goaction.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	var paths []string
	for _, it := range iss {
		paths = append(paths, it.Path)
	}
	if diff := cmp.Diff([]string{"/1", "/3"}, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	v, err := g.Array(g.Int()).Parse(ctx, []int{1, 2})
	if err != nil {
		t.Fatalf("typed slice should parse: %v", err)
	}
	if diff := cmp.Diff([]any{1, 2}, v); diff != "" {
		t.Fatalf("array value mismatch (-want +got):\n%s", diff)
	}
}

func TestNullable(t *testing.T) {
	ctx := context.Background()
	if _, err := g.String().Parse(ctx, nil); err == nil {
		t.Fatalf("null must be rejected without Nullable")
	}
	v, err := g.String().Nullable().Parse(ctx, nil)
	if err != nil || v != nil {
		t.Fatalf("nullable should accept null, got v=%v err=%v", v, err)
	}
}
