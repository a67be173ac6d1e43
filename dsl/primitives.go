package dsl

import (
	"context"
	"math"
	"reflect"
	"strconv"

	"github.com/reoring/goaction"
	"github.com/reoring/goaction/i18n"
	js "github.com/reoring/goaction/jsonschema"
)

// String accepts Go strings.
func String() Adapter {
	return Adapter{
		kind: kindString,
		parse: func(_ context.Context, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return nil, invalidType(kindString)
			}
			return s, nil
		},
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "string"} },
	}
}

// Number accepts any Go numeric value or json.Number and yields float64.
func Number() Adapter {
	return Adapter{
		kind: kindNumber,
		parse: func(_ context.Context, v any) (any, error) {
			f, ok := toFloat(v)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, invalidType(kindNumber)
			}
			return f, nil
		},
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "number"} },
	}
}

// Int accepts integral numbers and yields int.
func Int() Adapter {
	return Adapter{
		kind: kindNumber,
		parse: func(_ context.Context, v any) (any, error) {
			f, ok := toFloat(v)
			if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, goaction.Issues{{
					Path:    "/",
					Code:    goaction.CodeInvalidType,
					Message: i18n.T(goaction.CodeInvalidType, map[string]string{"expected": "integer"}),
					Hint:    "expected integer",
				}}
			}
			return int(f), nil
		},
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "integer"} },
	}
}

// Bool accepts Go booleans.
func Bool() Adapter {
	return Adapter{
		kind: kindBool,
		parse: func(_ context.Context, v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, invalidType(kindBool)
			}
			return b, nil
		},
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "boolean"} },
	}
}

// Any accepts every non-null value unchanged.
func Any() Adapter {
	return Adapter{
		kind:       kindAny,
		parse:      func(_ context.Context, v any) (any, error) { return v, nil },
		jsonSchema: func() *js.Schema { return &js.Schema{} },
	}
}

// Array accepts slices whose elements satisfy elem and yields []any.
func Array(elem Adapter) Adapter {
	return Adapter{
		kind: kindArray,
		parse: func(ctx context.Context, v any) (any, error) {
			rv := reflect.ValueOf(v)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return nil, invalidType(kindArray)
			}
			out := make([]any, rv.Len())
			var iss goaction.Issues
			for i := range out {
				pv, err := elem.Parse(ctx, rv.Index(i).Interface())
				if err != nil {
					iss = goaction.AppendIssues(iss, issuesFromErr(err).Rebase("/"+strconv.Itoa(i))...)
					continue
				}
				out[i] = pv
			}
			if len(iss) > 0 {
				return nil, iss
			}
			return out, nil
		},
		jsonSchema: func() *js.Schema { return &js.Schema{Type: "array", Items: elem.JSONSchema()} },
	}
}

// Nested embeds an object schema as a field.
func Nested(s goaction.Schema) Adapter {
	return Adapter{
		kind:  kindObject,
		parse: func(ctx context.Context, v any) (any, error) { return s.Parse(ctx, v) },
		jsonSchema: func() *js.Schema {
			if j, ok := s.(goaction.JSONSchemer); ok {
				if out, err := j.JSONSchema(); err == nil && out != nil {
					cp := *out
					return &cp
				}
			}
			return &js.Schema{Type: "object"}
		},
	}
}

// issuesFromErr converts an error into Issues, wrapping non-Issues with
// CodeParseError.
func issuesFromErr(err error) goaction.Issues {
	if iss, ok := goaction.AsIssues(err); ok {
		return iss
	}
	return goaction.Issues{{Path: "/", Code: goaction.CodeParseError, Message: err.Error()}}
}
