package dsl

import (
	"context"
	"maps"
	"reflect"
	"slices"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/reoring/goaction"
	"github.com/reoring/goaction/i18n"
	js "github.com/reoring/goaction/jsonschema"
)

type objectSchema struct {
	fields     map[string]Adapter
	required   map[string]struct{}
	unknown    UnknownPolicy
	refines    []objRefine
	sortedKeys []string
}

type objRefine struct {
	name string
	fn   func(context.Context, map[string]any) error
}

var (
	_ goaction.Schema      = (*objectSchema)(nil)
	_ goaction.Merger      = (*objectSchema)(nil)
	_ goaction.JSONSchemer = (*objectSchema)(nil)
)

func newObjectSchema(fields map[string]Adapter, required map[string]struct{}, unknown UnknownPolicy, refines []objRefine) *objectSchema {
	keys := slices.Sorted(maps.Keys(fields))
	return &objectSchema{fields: fields, required: required, unknown: unknown, refines: refines, sortedKeys: keys}
}

// Merge combines o with a later object fragment: fields of next override
// fields of o, a redefined field takes next's required flag, the unknown
// policy of next wins and refinements run in order.
func (o *objectSchema) Merge(next goaction.Schema) (goaction.Schema, bool) {
	n, ok := next.(*objectSchema)
	if !ok {
		return nil, false
	}
	fields := maps.Clone(o.fields)
	required := maps.Clone(o.required)
	for k, ad := range n.fields {
		fields[k] = ad
		delete(required, k)
	}
	maps.Copy(required, n.required)
	return newObjectSchema(fields, required, n.unknown, slices.Concat(o.refines, n.refines)), true
}

// asObject accepts map[string]any directly and converts other maps, structs
// and pointers to structs through their JSON form.
func asObject(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, m != nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
	default:
		return nil, false
	}
	b, err := json.Marshal(rv.Interface())
	if err != nil {
		return nil, false
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	src, ok := asObject(v)
	if !ok {
		return nil, invalidType(kindObject)
	}
	out := make(map[string]any, len(o.fields))
	var iss goaction.Issues
	for _, k := range o.sortedKeys {
		ad := o.fields[k]
		val, exists := src[k]
		if !exists && ad.hasDefault {
			val, exists = ad.def, true
		}
		if !exists {
			if _, req := o.required[k]; req {
				iss = goaction.AppendIssues(iss, goaction.Issue{Path: "/" + k, Code: goaction.CodeRequired, Message: i18n.T(goaction.CodeRequired, nil)})
			}
			continue
		}
		parsed, err := ad.Parse(ctx, val)
		if err != nil {
			child, ok := goaction.AsIssues(err)
			if !ok {
				return nil, err
			}
			iss = goaction.AppendIssues(iss, child.Rebase("/"+k)...)
			continue
		}
		out[k] = parsed
	}
	iss = append(iss, o.collectUnknown(src, out)...)
	if len(iss) > 0 {
		return nil, iss
	}
	if err := o.refine(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// collectUnknown applies the unknown policy in key-sorted order.
func (o *objectSchema) collectUnknown(src, out map[string]any) goaction.Issues {
	var iss goaction.Issues
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		switch o.unknown {
		case UnknownStrict:
			iss = goaction.AppendIssues(iss, goaction.Issue{Path: "/" + k, Code: goaction.CodeUnknownKey, Message: i18n.T(goaction.CodeUnknownKey, nil)})
		case UnknownPassthrough:
			out[k] = src[k]
		}
	}
	return iss
}

func (o *objectSchema) refine(ctx context.Context, v map[string]any) error {
	var iss goaction.Issues
	for _, r := range o.refines {
		err := r.fn(ctx, v)
		if err == nil {
			continue
		}
		if i2, ok := goaction.AsIssues(err); ok {
			iss = goaction.AppendIssues(iss, i2...)
			continue
		}
		iss = goaction.AppendIssues(iss, goaction.Issue{Path: "/", Code: goaction.CodeCustom, Message: err.Error(), Hint: r.name})
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for k, ad := range o.fields {
		props[k] = ad.JSONSchema()
	}
	req := slices.Sorted(maps.Keys(o.required))
	var additional any
	switch o.unknown {
	case UnknownStrict:
		additional = false
	default:
		// Strip accepts then discards unknown keys, so both policies accept them.
		additional = true
	}
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}
