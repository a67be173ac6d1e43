package dsl

import (
	"context"
	"reflect"
	"strconv"

	"github.com/reoring/goaction"
	"github.com/reoring/goaction/i18n"
	js "github.com/reoring/goaction/jsonschema"
)

type valueKind uint8

const (
	kindAny valueKind = iota
	kindString
	kindNumber
	kindBool
	kindArray
	kindObject
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindBool:
		return "boolean"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	default:
		return "value"
	}
}

// Adapter is a field schema usable inside Object and Array. Modifiers return
// a new Adapter and leave the receiver untouched.
type Adapter struct {
	kind       valueKind
	parse      func(context.Context, any) (any, error)
	jsonSchema func() *js.Schema
	hasDefault bool
	def        any
	nullable   bool
}

// Parse validates a single value against the adapter.
func (ad Adapter) Parse(ctx context.Context, v any) (any, error) {
	if v == nil {
		if ad.nullable {
			return nil, nil
		}
		return nil, invalidType(ad.kind)
	}
	return ad.parse(ctx, v)
}

// JSONSchema describes the adapter.
func (ad Adapter) JSONSchema() *js.Schema {
	s := &js.Schema{}
	if ad.jsonSchema != nil {
		s = ad.jsonSchema()
	}
	if ad.hasDefault {
		s.Default = ad.def
	}
	s.Nullable = ad.nullable
	return s
}

// Nullable accepts null, which parses to nil.
func (ad Adapter) Nullable() Adapter {
	ad.nullable = true
	return ad
}

// Default supplies v when the field is missing from an object. The default is
// parsed like any present value.
func (ad Adapter) Default(v any) Adapter {
	ad.hasDefault, ad.def = true, v
	return ad
}

// Min sets an inclusive lower bound: the value for numbers, the length for
// strings and arrays. Other kinds ignore it.
func (ad Adapter) Min(n float64) Adapter { return ad.bound(n, true) }

// Max sets an inclusive upper bound, with the same interpretation as Min.
func (ad Adapter) Max(n float64) Adapter { return ad.bound(n, false) }

func (ad Adapter) bound(n float64, lower bool) Adapter {
	prev, prevJSON := ad.parse, ad.jsonSchema
	kind := ad.kind
	ad.parse = func(ctx context.Context, v any) (any, error) {
		out, err := prev(ctx, v)
		if err != nil {
			return nil, err
		}
		if err := checkBound(kind, out, n, lower); err != nil {
			return nil, err
		}
		return out, nil
	}
	ad.jsonSchema = func() *js.Schema {
		s := prevJSON()
		switch kind {
		case kindNumber:
			f := n
			if lower {
				s.Minimum = &f
			} else {
				s.Maximum = &f
			}
		case kindString:
			i := int(n)
			if lower {
				s.MinLength = &i
			} else {
				s.MaxLength = &i
			}
		case kindArray:
			i := int(n)
			if lower {
				s.MinItems = &i
			} else {
				s.MaxItems = &i
			}
		}
		return s
	}
	return ad
}

func checkBound(kind valueKind, v any, n float64, lower bool) error {
	var got float64
	code := goaction.CodeTooSmall
	if !lower {
		code = goaction.CodeTooBig
	}
	switch kind {
	case kindNumber:
		f, _ := toFloat(v)
		got = f
	case kindString:
		got = float64(len([]rune(v.(string))))
		code = lengthCode(lower)
	case kindArray:
		got = float64(len(v.([]any)))
		code = lengthCode(lower)
	default:
		return nil
	}
	if (lower && got >= n) || (!lower && got <= n) {
		return nil
	}
	key := "max"
	if lower {
		key = "min"
	}
	limit := strconv.FormatFloat(n, 'f', -1, 64)
	return goaction.Issues{{
		Path:    "/",
		Code:    code,
		Message: i18n.T(code, map[string]string{key: limit}),
		Params:  map[string]any{key: n, "got": got},
	}}
}

func lengthCode(lower bool) string {
	if lower {
		return goaction.CodeTooShort
	}
	return goaction.CodeTooLong
}

func invalidType(k valueKind) goaction.Issues {
	return goaction.Issues{{
		Path:    "/",
		Code:    goaction.CodeInvalidType,
		Message: i18n.T(goaction.CodeInvalidType, map[string]string{"expected": k.String()}),
		Hint:    "expected " + k.String(),
	}}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}
